// vkfftinfo probes the VkFFT native shim and reports the buffer sizing a
// transform described on the command line would require.
//
// With -simulator it uses the in-process pure-Go library instead of loading
// the native one, which is handy on machines without a Vulkan stack.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/gomlx/vkfft"
	"github.com/gomlx/vkfft/internal/simulator"
	"github.com/gomlx/vkfft/internal/vkffi"
)

var (
	flagLengths   = flag.String("lengths", "1024", "comma-separated per-axis lengths, contiguous axis first")
	flagPrecision = flag.String("precision", "Single", "computation precision: "+strings.Join(vkfft.PrecisionStrings(), ", "))
	flagKind      = flag.String("kind", "ComplexForward", "transform kind: "+strings.Join(vkfft.TransformKindStrings(), ", "))
	flagBatches   = flag.Int("batches", 1, "number of batched transforms per execution")
	flagSimulator = flag.Bool("simulator", false, "use the in-process simulator instead of the native library")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagSimulator {
		vkffi.Register(simulator.New())
	}
	lib, err := vkffi.Registered()
	if err != nil {
		fmt.Fprintf(os.Stderr, "native VkFFT library unavailable: %v\n", err)
		fmt.Fprintln(os.Stderr, "re-run with -simulator for the in-process implementation")
		os.Exit(1)
	}
	fmt.Printf("library: %s\n", lib.Name())

	var lengths []int
	for _, s := range strings.Split(*flagLengths, ",") {
		lengths = append(lengths, must.M1(strconv.Atoi(strings.TrimSpace(s))))
	}
	cfg := must.M1(vkfft.NewConfigBuilder().
		Dim(lengths...).
		Precision(must.M1(vkfft.PrecisionString(*flagPrecision))).
		Kind(must.M1(vkfft.TransformKindString(*flagKind))).
		Batches(*flagBatches).
		Build())

	fmt.Printf("transform: %s, %s precision, lengths %v, %d batch(es)\n",
		cfg.Kind(), cfg.Precision(), cfg.Lengths(), cfg.Batches())
	for _, role := range []vkfft.Role{vkfft.RoleInput, vkfft.RoleOutput} {
		fmt.Printf("  %-6s %8s\n", role, humanize.IBytes(cfg.BufferSize(role)))
	}
}
