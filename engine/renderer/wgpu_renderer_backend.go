package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	clearColor           wgpu.Color

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	pipeline        *wgpu.RenderPipeline
	uniformBuffer   *wgpu.Buffer
	uniformGroup    *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout

	mesh *gpuMesh

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ wgpuRendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device for a window surface.
// The calling goroutine is locked to its OS thread; every later backend call must come from it.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor wgpu.Color) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()

	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  clearColor,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		w.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, view, err := b.createTarget("MSAA Texture", width, height, count, *b.surfaceFormat)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createTarget("Depth Texture", width, height, count, wgpu.TextureFormatDepth24Plus)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	common.Logger().Debug("surface configured",
		"width", width, "height", height, "format", *b.surfaceFormat, "msaa", count)
	return nil
}

// createTarget creates a single-mip 2D render attachment and its default view.
func (b *wgpuRendererBackendImpl) createTarget(label string, width, height int, sampleCount uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("failed to create %s view: %w", label, err)
	}
	return tex, view, nil
}

// releaseTargets frees the MSAA and depth attachments. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode common.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = wgpuPresentMode(mode)
}

func (b *wgpuRendererBackendImpl) RegisterSurfacePipeline(source string, uniformBinding uint32, uniformSize uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering the pipeline")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Surface Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile surface shader: %w", err)
	}
	defer module.Release()

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    uniformBinding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}
	b.bindGroupLayout = layout

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Surface Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	// one tightly packed buffer per stream: positions in slot 0, normals in slot 1
	vertexLayouts := make([]wgpu.VertexBufferLayout, 0, len(model.VertexStreams))
	for _, stream := range model.VertexStreams {
		vertexLayouts = append(vertexLayouts, wgpu.VertexBufferLayout{
			ArrayStride: stream.Stride(),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         wgpu.VertexFormatFloat32x3,
					Offset:         0,
					ShaderLocation: stream.Location,
				},
			},
		})
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Surface Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}
	b.pipeline = created

	b.uniformBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Scene Uniform Buffer",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create scene uniform buffer: %w", err)
	}

	b.uniformGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Scene Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: uniformBinding,
				Buffer:  b.uniformBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create scene bind group: %w", err)
	}

	return nil
}

func (b *wgpuRendererBackendImpl) UploadMesh(m model.Model) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	mesh := &gpuMesh{
		label:       m.Name(),
		indexCount:  uint32(m.IndexCount()),
		indexFormat: wgpuIndexFormat(m.IndexFormat()),
	}

	streams := [][]byte{m.PositionData(), m.NormalData()}
	for i, data := range streams {
		buf, err := b.createFilledBuffer(m.Name()+" "+model.VertexStreams[i].Name+" Buffer", data, wgpu.BufferUsageVertex)
		if err != nil {
			mesh.Release()
			return err
		}
		mesh.vertexBuffers = append(mesh.vertexBuffers, buf)
	}

	buf, err := b.createFilledBuffer(m.Name()+" Index Buffer", m.IndexData(), wgpu.BufferUsageIndex)
	if err != nil {
		mesh.Release()
		return err
	}
	mesh.indexBuffer = buf

	// buffers are replaced wholesale on every regeneration
	b.mesh.Release()
	b.mesh = mesh
	return nil
}

// createFilledBuffer creates a buffer of the given usage and writes data into it. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createFilledBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuRendererBackendImpl) HasMesh() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mesh != nil
}

func (b *wgpuRendererBackendImpl) WriteUniform(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uniformBuffer == nil {
		return
	}
	b.queue.WriteBuffer(b.uniformBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// a held surface texture means the previous frame was never presented
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawMesh() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || b.mesh == nil || b.pipeline == nil {
		return
	}

	b.framePass.SetPipeline(b.pipeline)
	b.framePass.SetBindGroup(0, b.uniformGroup, nil)
	for slot, buf := range b.mesh.vertexBuffers {
		b.framePass.SetVertexBuffer(uint32(slot), buf, 0, wgpu.WholeSize)
	}
	b.framePass.SetIndexBuffer(b.mesh.indexBuffer, b.mesh.indexFormat, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(b.mesh.indexCount, 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrame()
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrame()
}

// releaseFrame drops the acquired surface texture and its view. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	b.mesh.Release()
	b.mesh = nil
	b.releaseTargets()

	if b.uniformGroup != nil {
		b.uniformGroup.Release()
		b.uniformGroup = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
