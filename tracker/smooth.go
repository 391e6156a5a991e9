/*
DESCRIPTION
  smooth.go maintains the smoothed track region across frames using an
  exponential moving average, tolerating brief detection dropouts.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

// Smoother holds the track state for one video. The zero value is not
// usable; use NewSmoother.
type Smoother struct {
	alpha     float64 // Weight given to each new detection.
	threshold int     // Consecutive misses that destroy the track.

	present bool
	box     Region
	lost    int
}

// NewSmoother returns a Smoother with smoothing factor alpha that destroys
// its track after lostThreshold consecutive frames without a detection.
func NewSmoother(alpha float64, lostThreshold int) *Smoother {
	return &Smoother{alpha: alpha, threshold: lostThreshold}
}

// Update advances the track by one frame. det is only used if ok is true.
func (s *Smoother) Update(det Region, ok bool) {
	if !ok {
		s.lost++
		if s.lost >= s.threshold {
			s.present = false
			s.box = Region{}
		}
		return
	}

	s.lost = 0
	if !s.present {
		s.present = true
		s.box = det
		return
	}

	s.box = Region{
		X: s.blend(det.X, s.box.X),
		Y: s.blend(det.Y, s.box.Y),
		W: s.blend(det.W, s.box.W),
		H: s.blend(det.H, s.box.H),
	}
}

func (s *Smoother) blend(det, prev int) int {
	return int(s.alpha*float64(det) + (1-s.alpha)*float64(prev))
}

// Box returns the smoothed region and whether a track is present.
func (s *Smoother) Box() (Region, bool) { return s.box, s.present }

// Lost returns the number of consecutive frames without a detection.
func (s *Smoother) Lost() int { return s.lost }

// Reset discards the track.
func (s *Smoother) Reset() {
	s.present = false
	s.box = Region{}
	s.lost = 0
}
