package paginate

import "sync"

// FaultInjector forces LoadPage to fail. A nil error from Fault means "run the real query".
type FaultInjector interface {
	Fault() error
}

// FaultFunc adapts a function to FaultInjector.
type FaultFunc func() error

func (f FaultFunc) Fault() error { return f() }

// SwitchableFault is a FaultInjector whose producer can be installed and removed at runtime,
// e.g. between requests of one test server. The zero value injects nothing.
type SwitchableFault struct {
	mu       sync.Mutex
	producer func() error
}

func NewSwitchableFault() *SwitchableFault { return &SwitchableFault{} }

// Set installs producer; it is called on every subsequent load until Reset.
func (s *SwitchableFault) Set(producer func() error) {
	s.mu.Lock()
	s.producer = producer
	s.mu.Unlock()
}

func (s *SwitchableFault) Reset() { s.Set(nil) }

func (s *SwitchableFault) Fault() error {
	s.mu.Lock()
	producer := s.producer
	s.mu.Unlock()
	if producer == nil {
		return nil
	}
	return producer()
}
