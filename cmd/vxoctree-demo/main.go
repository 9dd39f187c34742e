// Command vxoctree-demo builds a sample octree against a procedural scalar
// field, updates it from a second observer position, logs pool statistics,
// and, when -out is given, writes it to a file with the binary codec (it does
// not read the file back). It replaces the
// windowed/GPU demo loop of the teacher's rt_main.go + app/app.go with a
// headless CLI exercising the same construction/update/serialize pipeline
// the core package implements.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/svo-engine/vxoctree"
	"github.com/svo-engine/vxoctree/frustum"
	"github.com/svo-engine/vxoctree/sampler"
)

func main() {
	var (
		size      = flag.Float64("size", 64, "root cube half-extent")
		radius    = flag.Float64("radius", 24, "sample sphere radius")
		observerX = flag.Float64("observer-x", 0, "initial observer X position")
		observerY = flag.Float64("observer-y", 0, "initial observer Y position")
		observerZ = flag.Float64("observer-z", 200, "initial observer Z position")
		updateZ   = flag.Float64("update-z", 40, "observer Z position for the update pass")
		out       = flag.String("out", "", "write the serialized octree to this file")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	logger := vxoctree.NewDefaultLogger(vxoctree.DefaultLoggerName, *debug)

	runID := uuid.NewString()
	logger.Infof("run %s: size=%v radius=%v", runID, *size, *radius)

	tree, err := vxoctree.NewOctree(mgl32.Vec3{0, 0, 0}, float32(*size), vxoctree.Options{
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "vxoctree-demo:", err)
		os.Exit(1)
	}

	field := sampler.Sphere{
		Center:       mgl32.Vec3{0, 0, 0},
		Radius:       float32(*radius),
		PaletteIndex: 7,
	}

	observer := mgl32.Vec3{float32(*observerX), float32(*observerY), float32(*observerZ)}
	if err := tree.Generate(field, observer); err != nil {
		fmt.Fprintln(os.Stderr, "vxoctree-demo: generate:", err)
		os.Exit(1)
	}
	report(logger, tree, "after generate")

	closerObserver := mgl32.Vec3{float32(*observerX), float32(*observerY), float32(*updateZ)}
	if err := tree.Update(field, closerObserver); err != nil {
		fmt.Fprintln(os.Stderr, "vxoctree-demo: update:", err)
		os.Exit(1)
	}
	report(logger, tree, "after update")

	identity := frustum.Extract(mgl32.Ident4())
	voxels := tree.ListVoxels(identity)
	logger.Infof("listVoxels (identity frustum): %d entries", len(voxels))

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vxoctree-demo:", err)
			os.Exit(1)
		}
		defer f.Close()
		n, err := tree.WriteTo(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vxoctree-demo: write:", err)
			os.Exit(1)
		}
		logger.Infof("run %s: wrote %d bytes to %s", runID, n, *out)
	}
}

func report(logger vxoctree.Logger, tree *vxoctree.Octree, label string) {
	logger.Infof("%s: nodes=%d bricks=%d freeNodeBlocks=%d freeBricks=%d",
		label, tree.NodeCount(), tree.BrickCount(), tree.FreeNodeBlockCount(), tree.FreeBrickCount())
}
