package vxoctree

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// updateItem is one pending node in the updater's phase-1 traversal.
type updateItem struct {
	index  uint32
	center mgl32.Vec3
	// fresh marks a placeholder InternalLeaf just created by a refine step
	// in this same call: only fresh placeholders are eligible for brick
	// resolution in phase 1, so a long-settled empty region isn't
	// re-evaluated on every Update.
	fresh bool
}

// brickJob is a node queued for phase-2 parallel brick resolution.
type brickJob struct {
	index  uint32
	center mgl32.Vec3
	// extent is the node's full cube extent at the moment it was queued
	// (what the original calls currentSize), not its half-extent.
	extent float32
}

// Update re-evaluates the tree against oracle from observer's new position,
// refining nodes that have become too coarse and coarsening nodes that have
// become unnecessarily fine. It runs in two phases: a single-threaded
// top-down traversal that classifies every node and performs all pool
// mutation except brick sampling, and a parallel phase that samples and
// commits the bricks phase 1 queued. Grounded on ParallelOctree::Update.
func (o *Octree) Update(oracle VoxelData, observer mgl32.Vec3) error {
	jobs, err := o.updateTraverse(observer)
	if err != nil {
		return err
	}
	return o.updateResolveBricks(oracle, jobs)
}

// updateTraverse runs phase 1: classify every node depth by depth,
// single-threaded (no locking is needed; each index is visited exactly
// once), splitting/merging node pool entries as it goes and collecting the
// bricks that still need sampling.
func (o *Octree) updateTraverse(observer mgl32.Vec3) ([]brickJob, error) {
	depthBound := o.depth()
	extent := 2 * o.Size

	frontier := []updateItem{{index: 0, center: o.Center}}
	var jobs []brickJob

	for d := 0; d <= depthBound && len(frontier) > 0; d++ {
		halfExtent := extent / 2
		childExtent := halfExtent / 2
		next := make([]updateItem, 0, len(frontier))

		for _, item := range frontier {
			node := o.nodes.Get(item.index)
			distance := chebyshevDistance(observer, item.center)
			expected := RequiredExtent(distance)

			var err error
			next, jobs, err = o.updateClassify(item, node, expected, extent, childExtent, next, jobs)
			if err != nil {
				return nil, err
			}
		}

		frontier = next
		extent = halfExtent
	}

	return jobs, nil
}

func (o *Octree) updateClassify(item updateItem, node Node, expected, extent, childExtent float32, next []updateItem, jobs []brickJob) ([]updateItem, []brickJob, error) {
	switch node.Kind() {
	case Leaf, LeafWithBrick:
		if expected >= extent {
			// Fine enough as-is; this leaf is settled and is not requeued.
			return next, jobs, nil
		}
		// Too coarse: subdivide into 8 placeholder children.
		if node.Kind() == LeafWithBrick {
			o.freeBricks.Push(node.Payload())
		}
		firstChild, err := o.allocateOrReuseChildBlock()
		if err != nil {
			return next, jobs, err
		}
		for i, dir := range Directions {
			childCenter := item.center.Add(dir.Mul(childExtent))
			childIndex := firstChild + uint32(i)
			o.nodes.Set(childIndex, NewNode(InternalLeaf, 0))
			next = append(next, updateItem{index: childIndex, center: childCenter, fresh: true})
		}
		o.nodes.Set(item.index, NewNode(Internal, firstChild))
		return next, jobs, nil

	case Internal:
		childPtr := node.Payload()
		if expected >= extent {
			// Coarse enough now: collapse the subtree and queue a fresh
			// brick resolution for this node itself.
			o.freeNodes.Push(childPtr)
			jobs = append(jobs, brickJob{index: item.index, center: item.center, extent: extent})
			return next, jobs, nil
		}
		for i, dir := range Directions {
			childCenter := item.center.Add(dir.Mul(childExtent))
			next = append(next, updateItem{index: childPtr + uint32(i), center: childCenter})
		}
		return next, jobs, nil

	case InternalLeaf:
		if !item.fresh {
			// A long-settled empty region: still empty, nothing to do.
			return next, jobs, nil
		}
		if expected >= extent {
			jobs = append(jobs, brickJob{index: item.index, center: item.center, extent: extent})
		}
		// expected < extent here means this freshly split placeholder
		// would need further subdivision; the original never revisits it
		// in that case and neither does this port, so it is left as an
		// InternalLeaf permanently.
		return next, jobs, nil

	default:
		return next, jobs, fmt.Errorf("vxoctree: unexpected node kind %v during update: %w", node.Kind(), ErrPreconditionViolation)
	}
}

// updateResolveBricks runs phase 2: sample and commit every queued brick
// job in parallel across the scheduler's workers.
func (o *Octree) updateResolveBricks(oracle VoxelData, jobs []brickJob) error {
	if len(jobs) == 0 {
		return nil
	}

	var errs firstError
	o.opts.Logger.Debugf("update: resolving %d bricks", len(jobs))

	o.opts.Scheduler.ParallelFor(len(jobs), func(start, end, worker int) {
		defer func() {
			if r := recover(); r != nil {
				errs.set(fmt.Errorf("update: oracle panic: %v: %w", r, ErrOracleFault))
			}
		}()

		for i := start; i < end; i++ {
			if errs.get() != nil {
				return
			}
			job := jobs[i]
			halfExtent := job.extent / 2
			min := job.center.Sub(mgl32.Vec3{halfExtent, halfExtent, halfExtent})

			words, class, constant := sampleBrick(oracle, min, job.extent)
			switch class {
			case brickEmpty:
				o.nodes.Set(job.index, NewNode(InternalLeaf, 0))
			case brickConstant:
				o.nodes.Set(job.index, NewNode(Leaf, packColor(constant)))
			default:
				brickIndex, err := o.allocateOrReuseBrick(words)
				if err != nil {
					errs.set(err)
					return
				}
				o.nodes.Set(job.index, NewNode(LeafWithBrick, brickIndex))
			}
		}
	})

	return errs.get()
}
