package dfield

import (
	"math"

	"github.com/gogpu/dfield/internal/parallel"
)

// MaxSpread is the largest accepted spread value. The bound keeps the
// squared-distance accumulator inside an int32 during the window scan.
const MaxSpread = 32768

// Generate computes a quantized signed distance field from a black/white
// occupancy grid.
//
// data holds inputWidth*inputHeight bytes, row-major, origin top left;
// 0 is background, any nonzero byte is foreground. The output dimensions are
// independent of the input dimensions: each output pixel is mapped back to
// its nearest input pixel (round to nearest integer, ties away from zero)
// and the surrounding square window of radius spread is searched for the
// closest pixel of the opposite state. The Euclidean distance to that pixel,
// negated for foreground samples, is scaled so the window diagonal spans the
// signed byte range, rounded, and clamped to [-127, 127]. Pixels with no
// boundary crossing inside the window saturate to ±127.
//
// A spread of zero is accepted and produces an all-zero field.
//
// Generate is a pure function of its inputs: the result is byte-identical
// across runs and across worker counts. Errors are ErrBadInputSize,
// ErrBadOutputSize and ErrBadSpread, checked in that order; beyond that the
// data buffer is trusted to hold inputWidth*inputHeight bytes.
func Generate(data []uint8, inputWidth, inputHeight, outputWidth, outputHeight, spread int32, opts ...GenerateOption) (*Field, error) {
	if inputWidth <= 0 || inputHeight <= 0 {
		return nil, ErrBadInputSize
	}
	if outputWidth <= 0 || outputHeight <= 0 {
		return nil, ErrBadOutputSize
	}
	if spread < 0 || spread > MaxSpread {
		return nil, ErrBadSpread
	}

	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}

	field := make([]int8, int(outputWidth)*int(outputHeight))

	if spread == 0 {
		// Degenerate field: no window to search and no distance scale.
		return &Field{width: outputWidth, height: outputHeight, data: field}, nil
	}

	g := &generator{
		data:         data,
		inputWidth:   inputWidth,
		inputHeight:  inputHeight,
		outputWidth:  outputWidth,
		outputHeight: outputHeight,
		spread:       spread,
		xScale:       float64(inputWidth) / float64(outputWidth),
		yScale:       float64(inputHeight) / float64(outputHeight),
		norm:         float64(spread) * math.Sqrt2,
		field:        field,
	}

	pool := parallel.NewPool(o.workers)
	defer pool.Close()
	pool.ForEach(int(outputHeight), func(y int) {
		g.row(int32(y))
	})

	return &Field{width: outputWidth, height: outputHeight, data: field}, nil
}

// generator holds the read-only inputs and the output buffer shared by the
// row workers. Workers write disjoint rows of field and share nothing else.
type generator struct {
	data         []uint8
	inputWidth   int32
	inputHeight  int32
	outputWidth  int32
	outputHeight int32
	spread       int32
	xScale       float64
	yScale       float64
	norm         float64
	field        []int8
}

// row fills one output row.
func (g *generator) row(y int32) {
	yIn := nearest(float64(y)*g.yScale, g.inputHeight)
	base := int(y) * int(g.outputWidth)
	for x := int32(0); x < g.outputWidth; x++ {
		xIn := nearest(float64(x)*g.xScale, g.inputWidth)
		g.field[base+int(x)] = g.sample(xIn, yIn)
	}
}

// sample computes the quantized signed distance for one source coordinate.
func (g *generator) sample(xIn, yIn int32) int8 {
	state := g.data[int(yIn)*int(g.inputWidth)+int(xIn)] != 0

	// Square window scan for the nearest opposite-state pixel. Stepping
	// past the low edge skips pixel by pixel, stepping past the high edge
	// ends the scan in that axis.
	minDsq := int32(math.MaxInt32)
	for i := -g.spread; i <= g.spread; i++ {
		yIn2 := yIn + i
		if yIn2 < 0 {
			continue
		}
		if yIn2 >= g.inputHeight {
			break
		}
		rowBase := int(yIn2) * int(g.inputWidth)
		for j := -g.spread; j <= g.spread; j++ {
			xIn2 := xIn + j
			if xIn2 < 0 {
				continue
			}
			if xIn2 >= g.inputWidth {
				break
			}
			if (g.data[rowBase+int(xIn2)] != 0) != state {
				if dsq := i*i + j*j; dsq < minDsq {
					minDsq = dsq
				}
			}
		}
	}

	// minDsq stays at the sentinel for flat neighborhoods; the huge
	// magnitude then clamps to ±127 below.
	d := math.Sqrt(float64(minDsq))
	if state {
		d = -d
	}

	result := int32(math.Round(d / g.norm * 128))
	if result > 127 {
		result = 127
	}
	if result < -127 {
		result = -127
	}
	return int8(result)
}

// nearest maps a source-space coordinate to its nearest grid index,
// rounding ties away from zero. Upscaling can round one past the last
// row or column, so the index is clamped into the grid.
func nearest(v float64, limit int32) int32 {
	n := int32(math.Round(v))
	if n >= limit {
		n = limit - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}
