package soft

import "math"

// sample returns the bilinear, clamp-to-edge filtered texel at (u, v) as
// RGB in [0,1]. Texture row 0 is v = 0.
func (t *texture) sample(u, v float32) [3]float32 {
	if t.w == 0 || t.h == 0 {
		return [3]float32{}
	}
	fx := clampF32(u, 0, 1)*float32(t.w) - 0.5
	fy := clampF32(v, 0, 1)*float32(t.h) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	var out [3]float32
	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)
	for c := range out {
		top := c00[c] + (c10[c]-c00[c])*ax
		bot := c01[c] + (c11[c]-c01[c])*ax
		out[c] = (top + (bot-top)*ay) / 255
	}
	return out
}

func (t *texture) texel(x, y int) [3]float32 {
	x = min(max(x, 0), t.w-1)
	y = min(max(y, 0), t.h-1)
	i := (y*t.w + x) * 3
	return [3]float32{float32(t.rgb[i]), float32(t.rgb[i+1]), float32(t.rgb[i+2])}
}
