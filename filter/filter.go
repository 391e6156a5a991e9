/*
DESCRIPTION
  filter.go provides the package documentation and the frame type shared by
  the OpenCV backed segmentation and overlay components.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package filter provides the image processing stages of the tracker: a
// Mixture of Gaussians background model, mask conditioning, contour
// enumeration and the overlay drawn onto recorded frames. These require
// OpenCV and are only built with the withcv tag; otherwise stand-ins that
// return ErrNoCV are provided.
package filter

import "errors"

// ErrNoCV is returned by the stand-ins used when built without OpenCV.
var ErrNoCV = errors.New("built without OpenCV, rebuild with the withcv tag")
