//go:build withcv
// +build withcv

/*
DESCRIPTION
  filter_test.go tests mask conditioning, contour enumeration and
  segmentation on synthetic frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/cliptrack/tracker/config"
	"github.com/ausocean/utils/logging"
)

var white = color.RGBA{255, 255, 255, 0}

type matFrame struct{ m gocv.Mat }

func (f *matFrame) Size() image.Point { return image.Pt(f.m.Cols(), f.m.Rows()) }
func (f *matFrame) Mat() *gocv.Mat    { return &f.m }

func testConfig() config.Config {
	c := config.Config{Logger: logging.New(logging.Debug, &bytes.Buffer{}, true)}
	c.Validate()
	return c
}

func TestConditionRemovesSpeckle(t *testing.T) {
	mask := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8U)
	defer mask.Close()
	mask.SetUCharAt(10, 10, 255)
	mask.SetUCharAt(200, 300, 255)

	c := NewConditioner(3, 5)
	defer c.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	c.Condition(mask, &dst)

	if dst.Rows() != mask.Rows() || dst.Cols() != mask.Cols() {
		t.Fatalf("conditioned mask is %dx%d, want %dx%d", dst.Cols(), dst.Rows(), mask.Cols(), mask.Rows())
	}
	if n := gocv.CountNonZero(dst); n != 0 {
		t.Errorf("isolated pixels survived conditioning: %d non-zero", n)
	}
}

func TestConditionMergesFragments(t *testing.T) {
	mask := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8U)
	defer mask.Close()
	gocv.Rectangle(&mask, image.Rect(50, 50, 100, 150), white, -1)
	gocv.Rectangle(&mask, image.Rect(104, 50, 150, 150), white, -1)

	c := NewConditioner(3, 5)
	defer c.Close()
	c.Condition(mask, &mask)

	contours := Contours(mask)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want fragments merged into 1", len(contours))
	}
	if !image.Rect(50, 50, 150, 150).In(contours[0].Bounds) {
		t.Errorf("bounds %v do not cover both fragments", contours[0].Bounds)
	}
}

func TestConditionIdempotent(t *testing.T) {
	raw := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8U)
	defer raw.Close()
	raw.SetUCharAt(10, 10, 255)
	raw.SetUCharAt(220, 20, 255)
	gocv.Rectangle(&raw, image.Rect(50, 50, 100, 150), white, -1)
	gocv.Rectangle(&raw, image.Rect(104, 50, 150, 150), white, -1)

	c := NewConditioner(3, 5)
	defer c.Close()
	m1 := gocv.NewMat()
	defer m1.Close()
	m2 := gocv.NewMat()
	defer m2.Close()
	c.Condition(raw, &m1)
	c.Condition(m1, &m2)

	if m2.Rows() != raw.Rows() || m2.Cols() != raw.Cols() {
		t.Fatalf("conditioned mask is %dx%d, want %dx%d", m2.Cols(), m2.Rows(), raw.Cols(), raw.Rows())
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.BitwiseXor(raw, m1, &diff)
	first := gocv.CountNonZero(diff)
	gocv.BitwiseXor(m1, m2, &diff)
	second := gocv.CountNonZero(diff)
	if second > first {
		t.Errorf("second conditioning changed %d pixels, more than the %d changed by the first", second, first)
	}
}

func TestContours(t *testing.T) {
	mask := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8U)
	defer mask.Close()
	gocv.Rectangle(&mask, image.Rect(10, 10, 30, 30), white, -1)
	gocv.Rectangle(&mask, image.Rect(100, 100, 200, 180), white, -1)

	contours := Contours(mask)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	var largest tracker.Contour
	for _, c := range contours {
		if c.Area > largest.Area {
			largest = c
		}
	}
	want := image.Rect(100, 100, 200, 180)
	if !want.In(largest.Bounds) || largest.Bounds.Dx() > want.Dx()+1 {
		t.Errorf("largest contour bounds %v, want about %v", largest.Bounds, want)
	}
}

func TestSegment(t *testing.T) {
	c := testConfig()
	s := NewSegmenter(c)
	defer s.Close()

	bg := &matFrame{gocv.NewMatWithSize(360, 640, gocv.MatTypeCV8UC3)}
	defer bg.m.Close()
	for i := 0; i < int(c.WarmupFrames); i++ {
		err := s.Warm(bg)
		if err != nil {
			t.Fatalf("could not warm up: %v", err)
		}
	}

	contours, err := s.Segment(bg)
	if err != nil {
		t.Fatalf("could not segment background: %v", err)
	}
	if len(contours) != 0 {
		t.Errorf("got %d contours on the background", len(contours))
	}

	fg := &matFrame{gocv.NewMatWithSize(360, 640, gocv.MatTypeCV8UC3)}
	defer fg.m.Close()
	car := image.Rect(200, 100, 500, 300)
	gocv.Rectangle(&fg.m, car, white, -1)

	contours, err = s.Segment(fg)
	if err != nil {
		t.Fatalf("could not segment: %v", err)
	}
	sel := tracker.NewSelector(c.MinContourArea, c.MaxContourArea)
	det, ok := sel.Select(contours, nil)
	if !ok {
		t.Fatalf("vehicle not detected in %v", contours)
	}
	if !car.In(det.Rect()) {
		t.Errorf("detection %v does not cover %v", det, car)
	}
}

func TestSegmentWrongFrame(t *testing.T) {
	s := NewSegmenter(testConfig())
	defer s.Close()
	_, err := s.Segment(struct{ tracker.Frame }{})
	if err == nil {
		t.Error("expected error for frame without matrix")
	}
}

func TestAnnotate(t *testing.T) {
	f := &matFrame{gocv.NewMatWithSize(360, 640, gocv.MatTypeCV8UC3)}
	defer f.m.Close()

	a := NewAnnotator()
	err := a.Annotate(f, &tracker.Region{X: 100, Y: 100, W: 200, H: 100}, tracker.Stopped)
	if err != nil {
		t.Fatalf("could not annotate: %v", err)
	}

	// Centroid dot is red; gocv matrices are BGR.
	v := f.m.GetVecbAt(150, 200)
	if v[0] != 0 || v[1] != 0 || v[2] != 255 {
		t.Errorf("centroid pixel is %v, want red", v)
	}
	// Box edge is green.
	v = f.m.GetVecbAt(150, 100)
	if v[0] != 0 || v[1] != 255 || v[2] != 0 {
		t.Errorf("box edge pixel is %v, want green", v)
	}
}

func TestSegmenterQuitKey(t *testing.T) {
	var quits int
	s := NewSegmenter(testConfig())
	defer s.Close()
	s.Quit = func() { quits++ }

	for _, k := range []int{-1, 'a', 'Q', 'q', 0x100 | 'q'} {
		s.key(k)
	}
	if quits != 2 {
		t.Errorf("quit called %d times, want 2", quits)
	}

	s.Quit = nil
	s.key('q')
}
