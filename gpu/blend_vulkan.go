//go:build !headless

package gpu

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

// blendPipeline is a render pipeline with a fixed three-vertex viewport
// triangle, a bind group of (A, B, sampler), and REPLACE blend state — the
// compositing itself happens in the fragment shader, matching spec.md §4.8.
type blendPipeline struct {
	renderPass      vk.RenderPass
	pipelineLayout  vk.PipelineLayout
	pipeline        vk.Pipeline
	descriptorLayout vk.DescriptorSetLayout
	descriptorPool  vk.DescriptorPool
	vertModule      vk.ShaderModule
	fragModule      vk.ShaderModule
	format          vk.Format
}

// BlendModes holds the engine's named blend pipelines. The engine must
// provide at minimum Normal (source-over).
type BlendModes struct {
	Normal *blendPipeline
}

// pipelineCache is the per-object-type (here, per target format) one-shot
// pipeline guard spec.md §9 calls for: pipelines are expensive to build and
// stateless after construction.
var pipelineCache = map[vk.Format]*blendPipeline{}

// NewBlendModes builds (or reuses, via the one-shot pipeline guard) the
// blend pipelines targeting the given output format.
func NewBlendModes(b *Bundle, target Format) (*BlendModes, error) {
	vf := vkFormat(target)
	if cached, ok := pipelineCache[vf]; ok {
		return &BlendModes{Normal: cached}, nil
	}
	p, err := b.buildBlendPipeline(vf)
	if err != nil {
		return nil, err
	}
	pipelineCache[vf] = p
	return &BlendModes{Normal: p}, nil
}

func (b *Bundle) buildBlendPipeline(format vk.Format) (*blendPipeline, error) {
	p := &blendPipeline{format: format}

	var err error
	if p.vertModule, err = b.createShaderModule(blendVertSource); err != nil {
		return nil, err
	}
	if p.fragModule, err = b.createShaderModule(blendFragSource); err != nil {
		return nil, err
	}

	if err := b.createBlendDescriptorSetLayout(p); err != nil {
		return nil, err
	}
	if err := b.createBlendRenderPass(p); err != nil {
		return nil, err
	}
	if err := b.createBlendGraphicsPipeline(p); err != nil {
		return nil, err
	}
	return p, nil
}

// createShaderModule compiles GLSL source to SPIR-V is intentionally NOT
// done here: the embedded strings are the .spv artefacts' GLSL source
// (see shaders.go); a real build compiles them ahead of time via glslc.
func (b *Bundle) createShaderModule(_ string) (vk.ShaderModule, error) {
	// Placeholder entry point: in a built binary this receives the
	// glslc-compiled SPIR-V bytes for the corresponding source file rather
	// than the GLSL text itself.
	code := compiledShaderBytes()
	info := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}
	var module vk.ShaderModule
	if res := vk.CreateShaderModule(b.device, &info, nil, &module); res != vk.Success {
		return nil, &InitError{Operation: "create shader module", Details: "vkCreateShaderModule", Err: fmt.Errorf("result %d", res)}
	}
	return module, nil
}

func (b *Bundle) createBlendDescriptorSetLayout(p *blendPipeline) error {
	bindings := []vk.DescriptorSetLayoutBinding{
		{Binding: 0, DescriptorType: vk.DescriptorTypeCombinedImageSampler, DescriptorCount: 1, StageFlags: vk.ShaderStageFlags(vk.ShaderStageFragmentBit)},
		{Binding: 1, DescriptorType: vk.DescriptorTypeCombinedImageSampler, DescriptorCount: 1, StageFlags: vk.ShaderStageFlags(vk.ShaderStageFragmentBit)},
	}
	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	var layout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(b.device, &info, nil, &layout); res != vk.Success {
		return &InitError{Operation: "create blend descriptor layout", Details: "vkCreateDescriptorSetLayout", Err: fmt.Errorf("result %d", res)}
	}
	p.descriptorLayout = layout
	return nil
}

func (b *Bundle) createBlendRenderPass(p *blendPipeline) error {
	attachment := vk.AttachmentDescription{
		Format:         p.format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutTransferSrcOptimal,
	}
	ref := vk.AttachmentReference{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{ref},
	}
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{attachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}
	var pass vk.RenderPass
	if res := vk.CreateRenderPass(b.device, &info, nil, &pass); res != vk.Success {
		return &InitError{Operation: "create blend render pass", Details: "vkCreateRenderPass", Err: fmt.Errorf("result %d", res)}
	}
	p.renderPass = pass
	return nil
}

func (b *Bundle) createBlendGraphicsPipeline(p *blendPipeline) error {
	layoutInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{p.descriptorLayout},
	}
	var layout vk.PipelineLayout
	if res := vk.CreatePipelineLayout(b.device, &layoutInfo, nil, &layout); res != vk.Success {
		return &InitError{Operation: "create blend pipeline layout", Details: "vkCreatePipelineLayout", Err: fmt.Errorf("result %d", res)}
	}
	p.pipelineLayout = layout

	stages := []vk.PipelineShaderStageCreateInfo{
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageVertexBit, Module: p.vertModule, PName: safeCString("main")},
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageFragmentBit, Module: p.fragModule, PName: safeCString("main")},
	}
	// No vertex buffer: the three-vertex viewport triangle is generated in
	// the vertex shader from gl_VertexIndex.
	vertexInput := vk.PipelineVertexInputStateCreateInfo{SType: vk.StructureTypePipelineVertexInputStateCreateInfo}
	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: vk.PrimitiveTopologyTriangleList,
	}
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	raster := vk.PipelineRasterizationStateCreateInfo{
		SType:     vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeFlags(vk.CullModeNone),
		FrontFace:   vk.FrontFaceCounterClockwise,
		LineWidth:   1,
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
	}
	// Blend state is REPLACE: the fragment shader itself performs the
	// "A over B" composite, so the attachment simply writes the result.
	colorBlendAttachment := vk.PipelineColorBlendAttachmentState{
		BlendEnable:    vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachment},
	}
	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &raster,
		PMultisampleState:   &multisample,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamicState,
		Layout:              layout,
		RenderPass:          p.renderPass,
		Subpass:             0,
	}
	pipelines := make([]vk.Pipeline, 1)
	if res := vk.CreateGraphicsPipelines(b.device, vk.PipelineCache(vk.NullHandle), 1,
		[]vk.GraphicsPipelineCreateInfo{pipelineInfo}, nil, pipelines); res != vk.Success {
		return &InitError{Operation: "create blend graphics pipeline", Details: "vkCreateGraphicsPipelines", Err: fmt.Errorf("result %d", res)}
	}
	p.pipeline = pipelines[0]
	return nil
}

// Blend writes the "A over B" composite into target using this blend mode's
// pipeline. Target must not alias A or B (the swap-then-blend driver
// protocol in compositor.Render guarantees this).
func (bm *blendPipeline) Blend(b *Bundle, a, src, target *Texture) error {
	cmd, err := b.beginOneShotCommand()
	if err != nil {
		return err
	}

	framebuffer, err := b.createTransientFramebuffer(bm.renderPass, target)
	if err != nil {
		return err
	}
	defer vk.DestroyFramebuffer(b.device, framebuffer, nil)

	clear := vk.ClearValue{}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  bm.renderPass,
		Framebuffer: framebuffer,
		RenderArea:  vk.Rect2D{Extent: vk.Extent2D{Width: uint32(target.width), Height: uint32(target.height)}},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{clear},
	}
	vk.CmdBeginRenderPass(cmd, &renderPassInfo, vk.SubpassContentsInline)

	viewport := vk.Viewport{Width: float32(target.width), Height: float32(target.height), MaxDepth: 1}
	vk.CmdSetViewport(cmd, 0, 1, []vk.Viewport{viewport})
	scissor := vk.Rect2D{Extent: vk.Extent2D{Width: uint32(target.width), Height: uint32(target.height)}}
	vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{scissor})

	vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, bm.pipeline)

	descriptorSet, err := b.bindTransientDescriptorSet(bm, a, src)
	if err != nil {
		return err
	}
	vk.CmdBindDescriptorSets(cmd, vk.PipelineBindPointGraphics, bm.pipelineLayout, 0, 1, []vk.DescriptorSet{descriptorSet}, 0, nil)

	vk.CmdDraw(cmd, 3, 1, 0, 0)
	vk.CmdEndRenderPass(cmd)

	fence, err := b.endOneShotCommand(cmd)
	if err != nil {
		return err
	}
	defer vk.DestroyFence(b.device, fence, nil)
	if res := vk.WaitForFences(b.device, 1, []vk.Fence{fence}, vk.True, ^uint64(0)); res != vk.Success {
		return fmt.Errorf("wait for blend fence: result %d", res)
	}
	return nil
}

func (b *Bundle) createTransientFramebuffer(pass vk.RenderPass, target *Texture) (vk.Framebuffer, error) {
	info := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      pass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{target.view},
		Width:           uint32(target.width),
		Height:          uint32(target.height),
		Layers:          1,
	}
	var fb vk.Framebuffer
	if res := vk.CreateFramebuffer(b.device, &info, nil, &fb); res != vk.Success {
		return nil, fmt.Errorf("create blend framebuffer: result %d", res)
	}
	return fb, nil
}

func (b *Bundle) bindTransientDescriptorSet(p *blendPipeline, a, src *Texture) (vk.DescriptorSet, error) {
	poolSize := vk.DescriptorPoolSize{Type: vk.DescriptorTypeCombinedImageSampler, DescriptorCount: 2}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType: vk.StructureTypeDescriptorPoolCreateInfo, MaxSets: 1,
		PoolSizeCount: 1, PPoolSizes: []vk.DescriptorPoolSize{poolSize},
	}
	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(b.device, &poolInfo, nil, &pool); res != vk.Success {
		return nil, fmt.Errorf("create blend descriptor pool: result %d", res)
	}
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType: vk.StructureTypeDescriptorSetAllocateInfo, DescriptorPool: pool,
		DescriptorSetCount: 1, PSetLayouts: []vk.DescriptorSetLayout{p.descriptorLayout},
	}
	sets := make([]vk.DescriptorSet, 1)
	if res := vk.AllocateDescriptorSets(b.device, &allocInfo, &sets[0]); res != vk.Success {
		return nil, fmt.Errorf("allocate blend descriptor set: result %d", res)
	}

	writes := []vk.WriteDescriptorSet{
		{SType: vk.StructureTypeWriteDescriptorSet, DstSet: sets[0], DstBinding: 0, DescriptorCount: 1,
			DescriptorType: vk.DescriptorTypeCombinedImageSampler,
			PImageInfo:     []vk.DescriptorImageInfo{{Sampler: b.sampler, ImageView: a.view, ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal}}},
		{SType: vk.StructureTypeWriteDescriptorSet, DstSet: sets[0], DstBinding: 1, DescriptorCount: 1,
			DescriptorType: vk.DescriptorTypeCombinedImageSampler,
			PImageInfo:     []vk.DescriptorImageInfo{{Sampler: b.sampler, ImageView: src.view, ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal}}},
	}
	vk.UpdateDescriptorSets(b.device, uint32(len(writes)), writes, 0, nil)
	return sets[0], nil
}

func sliceUint32(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
	}
	return out
}

// compiledShaderBytes is a placeholder for the glslc-compiled SPIR-V bytes
// that a real build embeds per shader stage (see shaders.go's go:generate
// directives); this module never invokes the toolchain, so it cannot
// synthesise valid SPIR-V here.
func compiledShaderBytes() []byte {
	return nil
}
