//go:build !headless

package gpu

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
)

// Texture is a GPU render target (image + view) of fixed descriptor, owned
// by a Pool.
type Texture struct {
	image  vk.Image
	memory vk.DeviceMemory
	view   vk.ImageView
	width  int
	height int
	format Format
}

func vkFormat(f Format) vk.Format {
	switch f {
	case FormatRGBA8UnormSRGB:
		return vk.FormatR8g8b8a8Srgb
	default:
		return vk.FormatR8g8b8a8Unorm
	}
}

// NewTexturePool builds a pool that allocates fresh Rgba8-family render
// targets of the given format against this bundle.
func (b *Bundle) NewTexturePool(format Format) *Pool[*Texture] {
	return NewPool(func() (*Texture, error) {
		return b.newTexture(format)
	})
}

func (b *Bundle) newTexture(format Format) (*Texture, error) {
	imgInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    vkFormat(format),
		Extent:    vk.Extent3D{Width: uint32(b.width), Height: uint32(b.height), Depth: 1},
		MipLevels: 1,
		ArrayLayers: 1,
		Samples:   vk.SampleCount1Bit,
		Tiling:    vk.ImageTilingOptimal,
		Usage: vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit |
			vk.ImageUsageSampledBit | vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	var image vk.Image
	if res := vk.CreateImage(b.device, &imgInfo, nil, &image); res != vk.Success {
		return nil, &InitError{Operation: "create texture", Details: "vkCreateImage", Err: fmt.Errorf("result %d", res)}
	}

	var memReqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(b.device, image, &memReqs)
	memReqs.Deref()

	memTypeIndex, err := b.findMemoryType(memReqs.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return nil, &InitError{Operation: "create texture", Details: "no suitable memory type", Err: err}
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memTypeIndex,
	}
	var mem vk.DeviceMemory
	if res := vk.AllocateMemory(b.device, &allocInfo, nil, &mem); res != vk.Success {
		return nil, &InitError{Operation: "create texture", Details: "vkAllocateMemory", Err: fmt.Errorf("result %d", res)}
	}
	vk.BindImageMemory(b.device, image, mem, 0)

	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   imgInfo.Format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}
	var view vk.ImageView
	if res := vk.CreateImageView(b.device, &viewInfo, nil, &view); res != vk.Success {
		return nil, &InitError{Operation: "create texture", Details: "vkCreateImageView", Err: fmt.Errorf("result %d", res)}
	}

	return &Texture{image: image, memory: mem, view: view, width: b.width, height: b.height, format: format}, nil
}

// Clear fills the texture with a solid colour via vkCmdClearColorImage, the
// minimal one-shot command every reference visual object issues before
// drawing (spec.md §4.6's clear-before-draw requirement).
func (t *Texture) Clear(b *Bundle, r, g, bch, a uint8) error {
	cmd, err := b.beginOneShotCommand()
	if err != nil {
		return err
	}
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           vk.ImageLayoutUndefined,
		NewLayout:           vk.ImageLayoutTransferDstOptimal,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               t.image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
		DstAccessMask: vk.AccessFlags(vk.AccessTransferWriteBit),
	}
	vk.CmdPipelineBarrier(cmd, vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
		vk.PipelineStageFlags(vk.PipelineStageTransferBit), 0, 0, nil, 0, nil, 1,
		[]vk.ImageMemoryBarrier{barrier})

	clearColor := vk.ClearColorValue{}
	clearColor.SetFloat32([]float32{float32(r) / 255, float32(g) / 255, float32(bch) / 255, float32(a) / 255})
	rng := vk.ImageSubresourceRange{AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit), LevelCount: 1, LayerCount: 1}
	vk.CmdClearColorImage(cmd, t.image, vk.ImageLayoutTransferDstOptimal, &clearColor, 1, []vk.ImageSubresourceRange{rng})

	fence, err := b.endOneShotCommand(cmd)
	if err != nil {
		return err
	}
	defer vk.DestroyFence(b.device, fence, nil)
	if res := vk.WaitForFences(b.device, 1, []vk.Fence{fence}, vk.True, ^uint64(0)); res != vk.Success {
		return fmt.Errorf("wait for clear fence: result %d", res)
	}
	return nil
}

// Destroy releases the texture's GPU resources.
func (t *Texture) Destroy(b *Bundle) {
	if t.view != vk.NullImageView {
		vk.DestroyImageView(b.device, t.view, nil)
	}
	if t.image != vk.NullImage {
		vk.DestroyImage(b.device, t.image, nil)
	}
	if t.memory != vk.NullDeviceMemory {
		vk.FreeMemory(b.device, t.memory, nil)
	}
}

// Readback blocks on a staging-buffer copy and fence wait, returning the
// texture's pixels as tightly-packed RGBA8 rows. This is the per-frame
// readback path spec.md §7 calls out as the one recoverable per-frame GPU
// error site: a buffer-map failure here is logged and the frame dropped by
// the caller, not propagated as fatal.
func (t *Texture) Readback(b *Bundle) ([]byte, error) {
	size := vk.DeviceSize(t.width * t.height * 4)

	bufInfo := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  size,
		Usage: vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
	}
	var staging vk.Buffer
	if res := vk.CreateBuffer(b.device, &bufInfo, nil, &staging); res != vk.Success {
		return nil, fmt.Errorf("create staging buffer: result %d", res)
	}
	defer vk.DestroyBuffer(b.device, staging, nil)

	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.device, staging, &memReqs)
	memReqs.Deref()
	memTypeIndex, err := b.findMemoryType(memReqs.MemoryTypeBits,
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, fmt.Errorf("staging buffer memory type: %w", err)
	}
	allocInfo := vk.MemoryAllocateInfo{SType: vk.StructureTypeMemoryAllocateInfo, AllocationSize: memReqs.Size, MemoryTypeIndex: memTypeIndex}
	var mem vk.DeviceMemory
	if res := vk.AllocateMemory(b.device, &allocInfo, nil, &mem); res != vk.Success {
		return nil, fmt.Errorf("allocate staging memory: result %d", res)
	}
	defer vk.FreeMemory(b.device, mem, nil)
	vk.BindBufferMemory(b.device, staging, mem, 0)

	cmd, err := b.beginOneShotCommand()
	if err != nil {
		return nil, err
	}
	region := vk.BufferImageCopy{
		ImageSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit), LayerCount: 1},
		ImageExtent:      vk.Extent3D{Width: uint32(t.width), Height: uint32(t.height), Depth: 1},
	}
	vk.CmdCopyImageToBuffer(cmd, t.image, vk.ImageLayoutTransferSrcOptimal, staging, 1, []vk.BufferImageCopy{region})

	fence, err := b.endOneShotCommand(cmd)
	if err != nil {
		return nil, err
	}
	defer vk.DestroyFence(b.device, fence, nil)
	if res := vk.WaitForFences(b.device, 1, []vk.Fence{fence}, vk.True, ^uint64(0)); res != vk.Success {
		return nil, fmt.Errorf("wait for readback fence: result %d", res)
	}

	var data unsafe.Pointer
	if res := vk.MapMemory(b.device, mem, 0, size, 0, &data); res != vk.Success {
		return nil, fmt.Errorf("map readback memory: result %d", res)
	}
	defer vk.UnmapMemory(b.device, mem)

	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(data), int(size)))
	return out, nil
}

func (b *Bundle) beginOneShotCommand() (vk.CommandBuffer, error) {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        b.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cmdBuffers := make([]vk.CommandBuffer, 1)
	if res := vk.AllocateCommandBuffers(b.device, &allocInfo, cmdBuffers); res != vk.Success {
		return nil, fmt.Errorf("allocate command buffer: result %d", res)
	}
	cmd := cmdBuffers[0]
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	vk.BeginCommandBuffer(cmd, &beginInfo)
	return cmd, nil
}

func (b *Bundle) endOneShotCommand(cmd vk.CommandBuffer) (vk.Fence, error) {
	vk.EndCommandBuffer(cmd)
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},
	}
	fenceInfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	var fence vk.Fence
	if res := vk.CreateFence(b.device, &fenceInfo, nil, &fence); res != vk.Success {
		return nil, fmt.Errorf("create fence: result %d", res)
	}
	if res := vk.QueueSubmit(b.queue, 1, []vk.SubmitInfo{submitInfo}, fence); res != vk.Success {
		return nil, fmt.Errorf("queue submit: result %d", res)
	}
	return fence, nil
}
