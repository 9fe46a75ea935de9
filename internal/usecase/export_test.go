package usecase

import "time"

// SetClock pins the time source so date-dependent tests are deterministic.
func (u *PriceUseCase) SetClock(clock func() time.Time) {
	u.clock = clock
}
