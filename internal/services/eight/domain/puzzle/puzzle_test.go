package puzzle

type fakeEnv struct {
	remainingSeconds int
	solved           int
	total            int
	indicators       int
	batteries        int
	serialSum        int
	ports            int
}

func (f *fakeEnv) RemainingTimeSeconds() int { return f.remainingSeconds }
func (f *fakeEnv) SolvedModuleCount() int    { return f.solved }
func (f *fakeEnv) TotalModuleCount() int     { return f.total }
func (f *fakeEnv) IndicatorCount() int       { return f.indicators }
func (f *fakeEnv) BatteryCount() int         { return f.batteries }
func (f *fakeEnv) SerialNumberDigitSum() int { return f.serialSum }
func (f *fakeEnv) PortCount() int            { return f.ports }

type fakeSignals struct {
	strikes int
	passes  int
}

func (f *fakeSignals) Strike() { f.strikes++ }
func (f *fakeSignals) Pass()   { f.passes++ }

type recorder struct {
	events []Event
}

func (r *recorder) Observe(evt Event) { r.events = append(r.events, evt) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Kind)
	}
	return out
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, evt := range r.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

func defaultEnv() *fakeEnv {
	return &fakeEnv{
		remainingSeconds: 300,
		solved:           1,
		total:            11,
		indicators:       2,
		batteries:        3,
		serialSum:        14,
		ports:            4,
	}
}
