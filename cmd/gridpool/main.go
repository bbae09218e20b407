// Command gridpool runs the pooling engines against each other: same random
// input, both realizations, bit-identity check and a latency summary.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"k8s.io/klog/v2"

	"github.com/gridpool-ml/gridpool/engine/direct"
	"github.com/gridpool-ml/gridpool/engine/vector"
	"github.com/gridpool-ml/gridpool/pool"
	"github.com/gridpool-ml/gridpool/tensor"
)

var (
	batch    = flag.Int("batch", 8, "batch size")
	channels = flag.Int("channels", 16, "channel count")
	height   = flag.Int("height", 64, "input height")
	width    = flag.Int("width", 64, "input width")
	kernel   = flag.Int("kernel", 2, "square kernel size")
	stride   = flag.Int("stride", 2, "stride along both axes")
	padMode  = flag.String("mode", "same", `padding mode: "same" or "explicit"`)
	padH     = flag.Int("pad-h", 0, "explicit top/bottom padding")
	padW     = flag.Int("pad-w", 0, "explicit left/right padding")
	indices  = flag.Bool("indices", false, "also produce argmax index maps")
	iters    = flag.Int("iters", 20, "timed iterations per engine")
	seed     = flag.Int64("seed", 1, "input RNG seed")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridpool: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var mode pool.Mode
	switch *padMode {
	case "same":
		mode = pool.Same()
	case "explicit":
		mode = pool.Explicit(*padH, *padW)
	default:
		return fmt.Errorf("unknown mode %q", *padMode)
	}

	shape := tensor.Shape{*batch, *channels, *height, *width}
	in, err := tensor.Randn(shape, tensor.Float32, rand.New(rand.NewSource(*seed)))
	if err != nil {
		return err
	}

	k := pool.Square(*kernel)
	s := pool.Step(*stride)
	pad, err := pool.ComputePadding(*height, *width, k, s, mode)
	if err != nil {
		return err
	}
	fmt.Printf("input %v kernel %dx%d stride %dx%d mode %s padding %+v\n",
		shape, k.H, k.W, s.H, s.W, mode, pad)

	timing := pool.NewTiming()
	poolers := []*pool.Pooler{
		pool.New(direct.New(), pool.WithObserver(timing.Observe)),
		pool.New(vector.New(), pool.WithObserver(timing.Observe)),
	}

	var refOut, refIdx *tensor.RawTensor
	for _, p := range poolers {
		var out, idx *tensor.RawTensor
		for i := 0; i < *iters; i++ {
			out, idx, err = p.MaxPool(in, k, s, mode, *indices)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Engine().Name(), err)
			}
		}
		fmt.Printf("%-8s out %v  %s\n", p.Engine().Name(), out.Shape(), timing.Summary(p.Engine().Name()))

		if refOut == nil {
			refOut, refIdx = out, idx
			continue
		}
		if !refOut.Equal(out) {
			return fmt.Errorf("pooled outputs are not bit-identical")
		}
		if *indices && !refIdx.Equal(idx) {
			return fmt.Errorf("index maps are not bit-identical")
		}
	}

	fmt.Println("engines agree: outputs bit-identical")
	return nil
}
