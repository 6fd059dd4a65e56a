package rlottie

import "image"

// Frame renders frame and returns it as an *image.RGBA sized to the
// animation's viewport.
func (a *Animation) Frame(frame int) (*image.RGBA, error) {
	w, h := a.Size()
	return a.FrameSized(frame, w, h)
}

// FrameSized renders frame into a width x height surface and returns it as
// an *image.RGBA. The image owns its pixels; it is unaffected by later
// renders.
func (a *Animation) FrameSized(frame, width, height int) (*image.RGBA, error) {
	buf, err := a.RenderSized(frame, width, height, 0)
	if err != nil {
		return nil, err
	}
	return bgraToRGBA(buf, width, height), nil
}

// bgraToRGBA converts a BGRA surface into a stdlib RGBA image by swapping
// the blue and red channels.
func bgraToRGBA(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	n := len(buf)
	if len(img.Pix) < n {
		n = len(img.Pix)
	}
	for i := 0; i+3 < n; i += 4 {
		img.Pix[i+0] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i+0]
		img.Pix[i+3] = buf[i+3]
	}
	return img
}
