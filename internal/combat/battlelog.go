package combat

import "go.uber.org/zap"

// ZapLog narrates every action at info level.
type ZapLog struct{ L *zap.Logger }

func (z ZapLog) Record(ev Event) {
	if z.L == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("round", ev.Round),
		zap.String("actor", ev.Actor),
		zap.String("side", ev.Side),
	}
	if ev.Target == "" {
		z.L.Info("no target", fields...)
		return
	}
	fields = append(fields, zap.String("target", ev.Target), zap.Int("target_hp", ev.TargetHP))
	if ev.Killed {
		z.L.Info("kill", fields...)
		return
	}
	z.L.Info("attack", fields...)
}

// Recorder keeps events for export.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Record(ev Event) { r.Events = append(r.Events, ev) }

// Kills counts recorded kills per side.
func (r *Recorder) Kills() map[string]int {
	out := map[string]int{}
	for _, ev := range r.Events {
		if ev.Killed {
			out[ev.Side]++
		}
	}
	return out
}

type MultiLog []BattleLog

func (m MultiLog) Record(ev Event) {
	for _, l := range m {
		if l != nil {
			l.Record(ev)
		}
	}
}

// LogFunc adapts a function to BattleLog.
type LogFunc func(Event)

func (f LogFunc) Record(ev Event) { f(ev) }
