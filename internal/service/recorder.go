package service

// Recorder receives business counters from the services.
type Recorder interface {
	LedgerWrite(operation string)
	MessageLogged()
	ImageStored()
	Advisory(kind string)
}

type nopRecorder struct{}

func (nopRecorder) LedgerWrite(string) {}
func (nopRecorder) MessageLogged()     {}
func (nopRecorder) ImageStored()       {}
func (nopRecorder) Advisory(string)    {}
