// Command shapeletdemo renders a pair of Gaussian mixtures and their
// analytic convolution to grayscale PNG images.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/batmanuel-sandbox/shapelet"
)

func main() {
	var (
		size   = flag.Int("size", 256, "image width and height in pixels")
		extent = flag.Float64("extent", 20.0, "half-width of the rendered region")
		output = flag.String("output", "convolved.png", "output file")
	)
	flag.Parse()

	psf := makeMixture(
		[]float64{0.6, 0.4},
		[][3]float64{{6, 5, 2}, {8, 10, -1}},
	)
	galaxy := makeMixture(
		[]float64{0.35, 0.65},
		[][3]float64{{7, 12, -2}, {7, 9, 1}},
	)
	convolved := galaxy.Convolve(psf)

	coords := make([]float64, *size)
	for i := range coords {
		coords[i] = -*extent + 2*(*extent)*float64(i)/float64(*size-1)
	}
	img := convolved.Evaluate().Grid(coords, coords)

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Rendered %d components to %s (%dx%d)\n",
		convolved.Len(), *output, *size, *size)
}

func makeMixture(weights []float64, moments [][3]float64) *shapelet.MultiShapeletFunction {
	msf := shapelet.NewMultiShapeletFunction()
	for i, w := range weights {
		q, err := shapelet.NewQuadrupole(moments[i][0], moments[i][1], moments[i][2])
		if err != nil {
			log.Fatalf("Bad quadrupole: %v", err)
		}
		f, err := shapelet.NewShapeletFunction(0, shapelet.Hermite, shapelet.NewEllipse(q, shapelet.Pt(0, 0)))
		if err != nil {
			log.Fatalf("Bad component: %v", err)
		}
		f.Coefficients()[0] = w / shapelet.FluxFactor
		msf.AddComponent(f)
	}
	return msf
}

// savePNG writes the buffer as an 8-bit grayscale PNG, scaled to the
// buffer's peak value.
func savePNG(path string, data [][]float64) error {
	peak := 0.0
	for _, row := range data {
		for _, v := range row {
			peak = math.Max(peak, v)
		}
	}
	img := image.NewGray(image.Rect(0, 0, len(data[0]), len(data)))
	for y, row := range data {
		for x, v := range row {
			level := math.Min(math.Max(v/peak, 0), 1)
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(level * 255))})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
