package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/attractor/internal/attractor"
)

// BifurcationPoint represents the values visited for one coefficient value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Bifurcation sweeps coefficient coef across its range in paramSteps values.
// For each value the attractor is rewound, run for transient steps, then
// record steps, keeping the distinct (to 1e-3) horizontal projections.
// The coefficient keeps its previous value on return.
func Bifurcation(a attractor.Attractor, coef, paramSteps, transient, record int) ([]BifurcationPoint, error) {
	ranges := a.CoefRanges()
	if coef < 0 || coef >= len(ranges) {
		return nil, fmt.Errorf("analysis: coefficient %d of %d", coef, len(ranges))
	}
	if paramSteps <= 1 {
		paramSteps = 2
	}
	r := ranges[coef]
	paramStep := r.Span() / float64(paramSteps-1)

	orig := a.Coefs()[coef]
	defer func() {
		a.Coefs()[coef] = orig
		a.ParamChanged(true)
		a.Reset()
	}()

	results := make([]BifurcationPoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := r.Clamp(r.Start + float64(i)*paramStep)
		if err := a.SetCoef(coef, param); err != nil {
			return nil, err
		}

		a.Reset()
		for s := 0; s < transient; s++ {
			a.Step()
		}

		values := make([]float64, 0, 100)
		seen := make(map[int64]bool)
		for s := 0; s < record; s++ {
			a.Step()
			x, _ := a.Project()
			if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > escapeRadius {
				break
			}
			key := int64(math.Round(x * 1000))
			if !seen[key] {
				seen[key] = true
				values = append(values, x)
			}
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}

	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Values {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := blankCanvas(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return canvasString(canvas)
}

func blankCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func canvasString(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
