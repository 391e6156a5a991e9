/*
DESCRIPTION
  video.go provides the package documentation and errors for video file
  input and clip output.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package video provides decoding of source video files and encoding of
// output clips using OpenCV. OpenCV is only used when built with the withcv
// tag; otherwise every open fails with ErrNoCV.
package video

import "errors"

var (
	ErrNoCV      = errors.New("built without OpenCV, rebuild with the withcv tag")
	ErrNotOpened = errors.New("video could not be opened")
)
