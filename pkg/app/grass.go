package app

import (
	"image/color"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// 草地颜色范围（噪声值 0 对应暗色，1 对应亮色）
var (
	grassDark  = color.RGBA{R: 58, G: 104, B: 40, A: 255}
	grassLight = color.RGBA{R: 104, G: 156, B: 64, A: 255}
)

// grassPixels 生成草地纹理的 RGBA 像素（每个像素对应一个色块）
func grassPixels(seed int64, width, height int) []byte {
	noise := opensimplex.NewNormalized(seed)
	pix := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := octaveNoise(noise, float64(x), float64(y), 3, 0.09, 0.5)
			c := lerpColor(grassDark, grassLight, v)
			i := (y*width + x) * 4
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
	}
	return pix
}

// octaveNoise 多倍频叠加，结果归一化到 [0, 1]
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
