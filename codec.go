package vxoctree

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// WriteTo serializes the octree as a little-endian binary stream:
//
//	center:     12 bytes (three f32)
//	size:        4 bytes (f32)
//	nodeCount:   4 bytes (u32)
//	nodes:       4*nodeCount bytes (u32[])
//	brickCount:  4 bytes (u32, number of bricks, not words)
//	bricks:      4*BrickElementCount*brickCount bytes (u32[])
//
// Grounded on the Serialize/file-write pair in ParallelOctree and the
// encoding/binary + io.Writer idiom Gekko3D-gekko's vox.go uses for its own
// chunked file format.
func (o *Octree) WriteTo(w io.Writer) (int64, error) {
	var written int64

	if err := binary.Write(w, binary.LittleEndian, o.Center); err != nil {
		return written, fmt.Errorf("vxoctree: write center: %w", err)
	}
	written += 12

	if err := binary.Write(w, binary.LittleEndian, o.Size); err != nil {
		return written, fmt.Errorf("vxoctree: write size: %w", err)
	}
	written += 4

	nodes := o.nodes.Words()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(nodes))); err != nil {
		return written, fmt.Errorf("vxoctree: write node count: %w", err)
	}
	written += 4
	if err := binary.Write(w, binary.LittleEndian, nodes); err != nil {
		return written, fmt.Errorf("vxoctree: write nodes: %w", err)
	}
	written += int64(len(nodes)) * 4

	bricks := o.bricks.Words()
	brickCount := uint32(len(bricks) / BrickElementCount)
	if err := binary.Write(w, binary.LittleEndian, brickCount); err != nil {
		return written, fmt.Errorf("vxoctree: write brick count: %w", err)
	}
	written += 4
	if err := binary.Write(w, binary.LittleEndian, bricks); err != nil {
		return written, fmt.Errorf("vxoctree: write bricks: %w", err)
	}
	written += int64(len(bricks)) * 4

	return written, nil
}

// ReadOctree deserializes a stream written by WriteTo. A stream that ends
// before a complete record has been read fails with ErrCorruptStream.
//
// The returned Octree's free lists start empty: persistence captures pool
// contents, not in-flight reclamation state. Callers that serialize mid-way
// through an Update should not expect FreeNodeBlockCount/FreeBrickCount to
// round-trip.
func ReadOctree(r io.Reader, opts Options) (*Octree, error) {
	var center mgl32.Vec3
	if err := binary.Read(r, binary.LittleEndian, &center); err != nil {
		return nil, fmt.Errorf("vxoctree: read center: %w", corruptIfShort(err))
	}

	var size float32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("vxoctree: read size: %w", corruptIfShort(err))
	}
	if size <= 0 {
		return nil, fmt.Errorf("vxoctree: decoded size %v is not positive: %w", size, ErrCorruptStream)
	}

	var nodeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &nodeCount); err != nil {
		return nil, fmt.Errorf("vxoctree: read node count: %w", corruptIfShort(err))
	}
	nodeWords := make([]uint32, nodeCount)
	if nodeCount > 0 {
		if err := binary.Read(r, binary.LittleEndian, nodeWords); err != nil {
			return nil, fmt.Errorf("vxoctree: read nodes: %w", corruptIfShort(err))
		}
	}

	var brickCount uint32
	if err := binary.Read(r, binary.LittleEndian, &brickCount); err != nil {
		return nil, fmt.Errorf("vxoctree: read brick count: %w", corruptIfShort(err))
	}
	brickWords := make([]uint32, uint64(brickCount)*uint64(BrickElementCount))
	if len(brickWords) > 0 {
		if err := binary.Read(r, binary.LittleEndian, brickWords); err != nil {
			return nil, fmt.Errorf("vxoctree: read bricks: %w", corruptIfShort(err))
		}
	}

	o := &Octree{
		Center: center,
		Size:   size,
		nodes:  nodePoolFromWords(nodeWords),
		bricks: brickPoolFromWords(brickWords, BrickElementCount),
		opts:   opts.withDefaults(),
	}
	return o, nil
}

// corruptIfShort maps a truncated-stream read failure to ErrCorruptStream,
// preserving the underlying error (typically io.ErrUnexpectedEOF or
// io.EOF) via wrapping.
func corruptIfShort(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%v: %w", err, ErrCorruptStream)
	}
	return err
}

// nodePoolFromWords reconstructs a NodePool from raw decoded words, used
// only by ReadOctree.
func nodePoolFromWords(words []uint32) *NodePool {
	nodes := make([]Node, len(words))
	for i, w := range words {
		nodes[i] = Node(w)
	}
	return &NodePool{nodes: nodes}
}

// brickPoolFromWords reconstructs a BrickPool from raw decoded words, used
// only by ReadOctree.
func brickPoolFromWords(words []uint32, stride int) *BrickPool {
	return &BrickPool{words: words, stride: stride}
}
