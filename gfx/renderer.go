package gfx

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/goki/mat32"

	"github.com/RajeshDM/habitat-sim/common"
	"github.com/RajeshDM/habitat-sim/profiler"
	"github.com/RajeshDM/habitat-sim/scene"
)

// DrawJob pairs one render target with the scene graph to draw into it.
// Jobs are fully described at enqueue time; the graph must not be mutated
// until the batch containing the job has completed.
type DrawJob struct {
	// Target is the color attachment the graph is rendered into.
	Target *RenderTarget
	// Graph is the scene graph providing the drawables.
	Graph *scene.Graph
}

// drawInstance is one flattened drawable: the node's absolute transform
// resolved on the CPU, ready for upload.
type drawInstance struct {
	world      mat32.Mat4
	assetPath  string
	semanticID int
}

// preparedJob is a DrawJob whose graph has been flattened for submission.
type preparedJob struct {
	job       DrawJob
	instances []drawInstance
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	// ctx is the context this renderer owns for handoff, or nil when an
	// externally managed context was already current at construction.
	ctx *WindowlessContext

	clearColor wgpu.Color

	// prepPool manages a bounded set of reusable goroutines for the CPU
	// flattening phase of a draw batch. Workers persist across batches.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int

	backgroundEnabled bool
	leaveContext      bool

	pending  []DrawJob
	inFlight bool

	jobsCh   chan []DrawJob
	doneCh   chan struct{}
	quitCh   chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup

	// instanceBuffers holds the per-target GPU buffer the flattened world
	// transforms are uploaded into, grown as instance counts grow.
	instanceBuffers map[*RenderTarget]*wgpu.Buffer
	instanceBufCaps map[*RenderTarget]uint64

	prof *profiler.Profiler
}

// Renderer issues draw work for scene graphs into render targets through a
// single shared GPU context. Draw submission is synchronous by default; when
// the background renderer is enabled, batches of draw jobs are handed to a
// dedicated render thread together with the GPU context, so the calling
// thread can prepare the next frame while the previous one renders.
//
// Scene graphs belonging to jobs of an in-flight batch must not be mutated
// until WaitDrawJobs returns.
type Renderer interface {
	// CreateRenderTarget creates an offscreen color target on the shared
	// device.
	//
	// Parameters:
	//   - width: target width in pixels
	//   - height: target height in pixels
	//
	// Returns:
	//   - *RenderTarget: the new target
	//   - error: error if no GPU context is available or creation fails
	CreateRenderTarget(width, height int) (*RenderTarget, error)

	// Draw renders the graph into the target synchronously on the calling
	// thread. The caller must hold the GPU context.
	//
	// Parameters:
	//   - target: the color target to render into
	//   - graph: the scene graph to draw
	//
	// Returns:
	//   - error: error if no context is available or submission fails
	Draw(target *RenderTarget, graph *scene.Graph) error

	// EnqueueAsyncDrawJob adds a job to the pending batch. Nothing is drawn
	// until StartDrawJobs.
	//
	// Parameters:
	//   - target: the color target to render into
	//   - graph: the scene graph to draw
	EnqueueAsyncDrawJob(target *RenderTarget, graph *scene.Graph)

	// StartDrawJobs hands the pending batch to the background render thread
	// (transferring the GPU context to it), or draws it synchronously when
	// no background renderer is available.
	//
	// Returns:
	//   - error: the first submission error in the synchronous path; always
	//     nil in the background path (failures there are logged)
	StartDrawJobs() error

	// WaitDrawJobs blocks until the in-flight batch (if any) has completed.
	// After it returns, the batch's scene graphs may be mutated again.
	WaitDrawJobs()

	// AcquireGPUContext makes the renderer's context current on the calling
	// thread. Callers must fence in-flight batches with WaitDrawJobs first.
	// No-op when the renderer does not own a context.
	AcquireGPUContext()

	// WasBackgroundRendererInitialized reports whether draw batches run on
	// the background render thread.
	//
	// Returns:
	//   - bool: true if the background renderer is active
	WasBackgroundRendererInitialized() bool

	// Close stops the background render thread and releases renderer-owned
	// GPU buffers. The GPU context itself is owned by the caller and is not
	// closed here.
	//
	// Returns:
	//   - error: always nil; reserved for future teardown failures
	Close() error
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on the given windowless context. Pass a nil
// context when a context is already current and externally managed; the
// background renderer requires an owned context to hand between threads and
// is disabled otherwise with a logged advisory.
//
// Parameters:
//   - ctx: the owned context, or nil to use the externally current one
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(ctx *WindowlessContext, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		ctx:             ctx,
		clearColor:      wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		prepWorkers:     max(runtime.NumCPU()-1, 1),
		jobsCh:          make(chan []DrawJob),
		doneCh:          make(chan struct{}),
		quitCh:          make(chan struct{}),
		instanceBuffers: make(map[*RenderTarget]*wgpu.Buffer),
		instanceBufCaps: make(map[*RenderTarget]uint64),
	}

	for _, option := range options {
		option(r)
	}

	if r.backgroundEnabled && ctx == nil {
		log.Printf("gfx: background renderer requested without an owned context; falling back to synchronous draw submission")
		r.backgroundEnabled = false
	}

	// Queue size of 256 accommodates large environment batches with headroom.
	r.prepPool = worker.NewDynamicWorkerPool(r.prepWorkers, 256, 1*time.Second)

	if r.backgroundEnabled {
		r.wg.Add(1)
		go r.handleDrawJobs()
	}

	return r
}

func (r *renderer) CreateRenderTarget(width, height int) (*RenderTarget, error) {
	device := r.device()
	if device == nil {
		return nil, errors.New("gfx: no GPU context available")
	}
	return newRenderTarget(device, width, height)
}

func (r *renderer) Draw(target *RenderTarget, graph *scene.Graph) error {
	if target == nil {
		return errors.New("gfx: nil render target")
	}
	if graph == nil {
		return errors.New("gfx: nil scene graph")
	}
	return r.submit(preparedJob{
		job:       DrawJob{Target: target, Graph: graph},
		instances: flattenGraph(graph),
	})
}

func (r *renderer) EnqueueAsyncDrawJob(target *RenderTarget, graph *scene.Graph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, DrawJob{Target: target, Graph: graph})
}

func (r *renderer) StartDrawJobs() error {
	r.mu.Lock()
	jobs := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(jobs) == 0 {
		return nil
	}

	if r.backgroundEnabled {
		// Hand the context to the render thread along with the batch.
		if r.ctx != nil && r.ctx.IsCurrent() {
			r.ctx.Release()
		}
		r.mu.Lock()
		r.inFlight = true
		r.mu.Unlock()
		r.jobsCh <- jobs
		return nil
	}

	// Synchronous fallback: prep and submit on the calling thread.
	var firstErr error
	for _, p := range r.prepare(jobs) {
		if err := r.submit(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.prof != nil {
		r.prof.Tick(len(jobs))
	}
	return firstErr
}

func (r *renderer) WaitDrawJobs() {
	r.mu.Lock()
	inFlight := r.inFlight
	r.mu.Unlock()
	if !inFlight {
		return
	}
	<-r.doneCh
	r.mu.Lock()
	r.inFlight = false
	r.mu.Unlock()
}

func (r *renderer) AcquireGPUContext() {
	if r.ctx == nil || r.ctx.IsCurrent() {
		return
	}
	r.ctx.MakeCurrent()
}

func (r *renderer) WasBackgroundRendererInitialized() bool {
	return r.backgroundEnabled
}

func (r *renderer) Close() error {
	r.quitOnce.Do(func() {
		close(r.quitCh)
	})
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, buf := range r.instanceBuffers {
		buf.Release()
	}
	r.instanceBuffers = nil
	r.instanceBufCaps = nil
	return nil
}

// handleDrawJobs runs batches on the background render thread. The thread is
// OS-locked because GPU context ownership follows the thread that made it
// current.
func (r *renderer) handleDrawJobs() {
	defer r.wg.Done()
	runtime.LockOSThread()

	for {
		select {
		case <-r.quitCh:
			return
		case jobs := <-r.jobsCh:
			prepared := r.prepare(jobs)

			if !r.ctx.IsCurrent() {
				r.ctx.MakeCurrent()
			}
			for _, p := range prepared {
				if err := r.submit(p); err != nil {
					log.Printf("gfx: draw job failed: %v", err)
				}
			}
			if !r.leaveContext {
				r.ctx.Release()
			}

			if r.prof != nil {
				r.prof.Tick(len(prepared))
			}
			r.doneCh <- struct{}{}
		}
	}
}

// prepare flattens each job's scene graph on the worker pool. A WaitGroup
// provides the per-batch barrier since the pool itself outlives batches.
func (r *renderer) prepare(jobs []DrawJob) []preparedJob {
	prepared := make([]preparedJob, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		idx, j := i, job
		r.prepPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				prepared[idx] = preparedJob{job: j, instances: flattenGraph(j.Graph)}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return prepared
}

// submit uploads the job's flattened instance transforms and encodes the
// frame pass for its target. The caller's thread must hold the GPU context.
func (r *renderer) submit(p preparedJob) error {
	device := r.device()
	queue := r.queue()
	if device == nil || queue == nil {
		return errors.New("gfx: no GPU context available")
	}
	if p.job.Target == nil || p.job.Target.View() == nil {
		return errors.New("gfx: draw job has no render target")
	}

	if len(p.instances) > 0 {
		if err := r.uploadInstances(device, queue, p); err != nil {
			return err
		}
	}

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gfx: failed to create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       p.job.Target.View(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		return fmt.Errorf("gfx: failed to finish command encoder: %w", err)
	}

	queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()
	return nil
}

// uploadInstances writes the batch's world transforms into the per-target
// instance buffer, growing it when the instance count outgrows the buffer.
func (r *renderer) uploadInstances(device *wgpu.Device, queue *wgpu.Queue, p preparedJob) error {
	var data []byte
	for i := range p.instances {
		data = append(data, common.StructToBytes(&p.instances[i].world)...)
	}

	r.mu.Lock()
	buf := r.instanceBuffers[p.job.Target]
	capacity := r.instanceBufCaps[p.job.Target]
	r.mu.Unlock()

	needed := uint64(len(data))
	if buf == nil || capacity < needed {
		if buf != nil {
			buf.Release()
		}
		newBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Instance Transforms",
			Size:  needed,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("gfx: failed to create instance buffer: %w", err)
		}
		buf = newBuf
		r.mu.Lock()
		r.instanceBuffers[p.job.Target] = buf
		r.instanceBufCaps[p.job.Target] = needed
		r.mu.Unlock()
	}

	queue.WriteBuffer(buf, 0, data)
	return nil
}

// device resolves the GPU device: the renderer's own context when it owns
// one, otherwise whichever context is externally current.
func (r *renderer) device() *wgpu.Device {
	if r.ctx != nil {
		return r.ctx.Device()
	}
	if cur := CurrentContext(); cur != nil {
		return cur.Device()
	}
	return nil
}

func (r *renderer) queue() *wgpu.Queue {
	if r.ctx != nil {
		return r.ctx.Queue()
	}
	if cur := CurrentContext(); cur != nil {
		return cur.Queue()
	}
	return nil
}

// flattenGraph resolves the absolute transform of every drawable node.
func flattenGraph(g *scene.Graph) []drawInstance {
	if g == nil {
		return nil
	}
	nodes := g.Drawables()
	out := make([]drawInstance, 0, len(nodes))
	for _, n := range nodes {
		d := n.Drawable()
		out = append(out, drawInstance{
			world:      n.WorldMatrix(),
			assetPath:  d.AssetPath,
			semanticID: n.SemanticID(),
		})
	}
	return out
}
