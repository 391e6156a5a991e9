/*
DESCRIPTION
  stop.go classifies the tracked object as moving or stopped from the
  average displacement of its recent centroids.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MotionState is the movement classification of the tracked object.
type MotionState int

const (
	Moving MotionState = iota
	Stopped
)

func (m MotionState) String() string {
	if m == Stopped {
		return "stopped"
	}
	return "moving"
}

// StopClassifier buffers recent centroids and counts consecutive frames
// whose average displacement is under a threshold.
type StopClassifier struct {
	threshold float64 // Average displacement in pixels below which a frame counts as still.
	required  int     // Consecutive still frames needed for Stopped.

	history []image.Point // Oldest first, never longer than cap(history).
	streak  int
	disp    float64 // Last average displacement, for diagnostics.
}

// NewStopClassifier returns a StopClassifier keeping capacity centroids.
func NewStopClassifier(capacity int, threshold float64, required int) *StopClassifier {
	return &StopClassifier{
		threshold: threshold,
		required:  required,
		history:   make([]image.Point, 0, capacity),
	}
}

// Update appends the centroid c and returns the resulting state.
func (s *StopClassifier) Update(c image.Point) MotionState {
	if cap(s.history) > 0 && len(s.history) == cap(s.history) {
		copy(s.history, s.history[1:])
		s.history = s.history[:len(s.history)-1]
	}
	s.history = append(s.history, c)

	if len(s.history) < 2 {
		s.streak = 0
		s.disp = 0
		return Moving
	}

	d := make([]float64, len(s.history)-1)
	for i := range d {
		a, b := s.history[i], s.history[i+1]
		d[i] = floats.Distance(
			[]float64{float64(a.X), float64(a.Y)},
			[]float64{float64(b.X), float64(b.Y)},
			2,
		)
	}
	s.disp = stat.Mean(d, nil)

	if s.disp < s.threshold {
		s.streak++
	} else {
		s.streak = 0
	}
	return s.State()
}

// State returns the current classification without changing it.
func (s *StopClassifier) State() MotionState {
	if s.streak >= s.required {
		return Stopped
	}
	return Moving
}

// Reset clears the centroid history and the stopped streak.
func (s *StopClassifier) Reset() {
	s.history = s.history[:0]
	s.streak = 0
	s.disp = 0
}

// Len returns the number of buffered centroids.
func (s *StopClassifier) Len() int { return len(s.history) }

// Streak returns the number of consecutive still frames.
func (s *StopClassifier) Streak() int { return s.streak }

// Displacement returns the average displacement computed by the last Update.
func (s *StopClassifier) Displacement() float64 { return s.disp }
