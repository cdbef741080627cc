package analyzer

import (
	"image"
	"image/color"
	"math"
)

// ContrastDetector implements edge-based region detection using the Sobel
// operator. Flat backgrounds produce no edges, so every block is content.
type ContrastDetector struct {
	MinBlockArea  int     // Minimum area in pixels² at full resolution
	EdgeThreshold float64 // Gradient magnitude threshold
	// Step samples every Step-th pixel. Frames are large and content is
	// coarse, so 1080p frames are analysed at a quarter of the resolution.
	Step int
}

// NewContrastDetector creates a new contrast-based detector with default settings.
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500,  // ~22x22 pixels minimum
		EdgeThreshold: 30.0, // Moderate sensitivity
		Step:          4,
	}
}

// Detect finds regions of interest using edge detection and morphology.
// Rectangles are reported in the coordinates of img.
func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	step := max(d.Step, 1)

	gray := toGrayscale(img, step)
	edges := sobelEdgeDetection(gray, d.EdgeThreshold)
	dilated := dilate(edges, 5, 2)

	origin := img.Bounds().Min
	var blocks []Block
	for _, rect := range findContours(dilated) {
		full := image.Rect(rect.Min.X*step, rect.Min.Y*step, rect.Max.X*step, rect.Max.Y*step).
			Add(origin).Intersect(img.Bounds())
		if full.Dx()*full.Dy() < d.MinBlockArea {
			continue
		}
		blocks = append(blocks, Block{Rect: full, Confidence: 0.7})
	}
	return blocks, nil
}

// toGrayscale converts an image to grayscale, sampling every step pixels.
// The result starts at the origin.
func toGrayscale(img image.Image, step int) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, (b.Dx()+step-1)/step, (b.Dy()+step-1)/step))

	rgba, fast := img.(*image.RGBA)
	for y := 0; y < gray.Rect.Dy(); y++ {
		for x := 0; x < gray.Rect.Dx(); x++ {
			px, py := b.Min.X+x*step, b.Min.Y+y*step
			if fast {
				c := rgba.RGBAAt(px, py)
				gray.SetGray(x, y, color.GrayModel.Convert(c).(color.Gray))
				continue
			}
			gray.SetGray(x, y, color.GrayModel.Convert(img.At(px, py)).(color.Gray))
		}
	}
	return gray
}

var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// sobelEdgeDetection marks pixels whose gradient magnitude exceeds threshold.
func sobelEdgeDetection(gray *image.Gray, threshold float64) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += pixel * float64(sobelX[ky+1][kx+1])
					sumY += pixel * float64(sobelY[ky+1][kx+1])
				}
			}
			if math.Hypot(sumX, sumY) > threshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

// dilate performs morphological dilation to connect nearby edges.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	result := image.NewGray(bounds)
	copy(result.Pix, img.Pix)

	half := kernelSize / 2
	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				maxVal := uint8(0)
				for ky := max(y-half, bounds.Min.Y); ky <= min(y+half, bounds.Max.Y-1) && maxVal == 0; ky++ {
					for kx := max(x-half, bounds.Min.X); kx <= min(x+half, bounds.Max.X-1); kx++ {
						if v := result.GrayAt(kx, ky).Y; v > maxVal {
							maxVal = v
						}
					}
				}
				temp.SetGray(x, y, color.Gray{Y: maxVal})
			}
		}
		result = temp
	}
	return result
}

// findContours finds bounding rectangles of connected white regions.
func findContours(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	visited := make([]bool, bounds.Dx()*bounds.Dy())

	var contours []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := (y-bounds.Min.Y)*bounds.Dx() + (x - bounds.Min.X)
			if img.GrayAt(x, y).Y > 128 && !visited[i] {
				contours = append(contours, floodFill(img, visited, x, y))
			}
		}
	}
	return contours
}

// floodFill marks the component at (startX, startY) and returns its bounds.
func floodFill(img *image.Gray, visited []bool, startX, startY int) image.Rectangle {
	bounds := img.Bounds()
	r := image.Rect(startX, startY, startX+1, startY+1)

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.In(bounds) {
			continue
		}
		i := (p.Y-bounds.Min.Y)*bounds.Dx() + (p.X - bounds.Min.X)
		if visited[i] || img.GrayAt(p.X, p.Y).Y <= 128 {
			continue
		}
		visited[i] = true
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return r
}
