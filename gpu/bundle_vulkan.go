//go:build !headless

package gpu

import (
	"fmt"
	"math"
	"sync"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/intuitionamiga/lumen/internal/geom"
)

var vulkanInitOnce sync.Once
var vulkanInitErr error

func initVulkanLoader() error {
	vulkanInitOnce.Do(func() {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			vulkanInitErr = fmt.Errorf("load vulkan library: %w", err)
			return
		}
		vulkanInitErr = vk.Init()
	})
	return vulkanInitErr
}

// Bundle is the GPU device bundle: instance, adapter, device, command
// queue, and the global bind-group layout/bind-group carrying the ortho
// projection uniform, created once per render.
type Bundle struct {
	mu sync.Mutex

	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	device         vk.Device
	queue          vk.Queue
	queueFamily    uint32
	commandPool    vk.CommandPool

	descriptorSetLayout vk.DescriptorSetLayout
	descriptorPool      vk.DescriptorPool
	descriptorSet       vk.DescriptorSet
	uniformBuffer       vk.Buffer
	uniformMemory       vk.DeviceMemory

	sampler vk.Sampler

	width, height int
}

// NewBundle initialises the GPU device bundle for a render of the given
// resolution, requiring clamp-to-border sampler addressing (spec's GPU
// feature requirement). Returns an *InitError on any failure.
func NewBundle(width, height int) (*Bundle, error) {
	if err := initVulkanLoader(); err != nil {
		return nil, &InitError{Operation: "loader init", Details: "vulkan unavailable", Err: err}
	}

	b := &Bundle{width: width, height: height}
	if err := b.createInstance(); err != nil {
		return nil, err
	}
	if err := b.selectPhysicalDevice(); err != nil {
		return nil, err
	}
	if err := b.createDevice(); err != nil {
		return nil, err
	}
	if err := b.createCommandPool(); err != nil {
		return nil, err
	}
	if err := b.createSampler(); err != nil {
		return nil, err
	}
	if err := b.createGlobalUniform(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) createInstance() error {
	appInfo := vk.ApplicationInfo{
		SType:         vk.StructureTypeApplicationInfo,
		PApplicationName: safeCString("lumen"),
		ApiVersion:    vk.ApiVersion11,
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}
	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return &InitError{Operation: "create instance", Details: "vkCreateInstance", Err: fmt.Errorf("result %d", res)}
	}
	b.instance = instance
	vk.InitInstance(instance)
	return nil
}

func (b *Bundle) selectPhysicalDevice() error {
	var count uint32
	vk.EnumeratePhysicalDevices(b.instance, &count, nil)
	if count == 0 {
		return &InitError{Operation: "select physical device", Details: "no vulkan-capable adapter found"}
	}
	devices := make([]vk.PhysicalDevice, count)
	vk.EnumeratePhysicalDevices(b.instance, &count, devices)
	// Pick the first device exposing a graphics queue family. GPU selection
	// heuristics beyond that are out of scope.
	for _, d := range devices {
		var qCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(d, &qCount, nil)
		props := make([]vk.QueueFamilyProperties, qCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(d, &qCount, props)
		for i, p := range props {
			p.Deref()
			if p.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
				b.physicalDevice = d
				b.queueFamily = uint32(i)
				return nil
			}
		}
	}
	return &InitError{Operation: "select physical device", Details: "no device exposes a graphics queue family"}
}

func (b *Bundle) createDevice() error {
	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: b.queueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{priority},
	}
	features := vk.PhysicalDeviceFeatures{
		SamplerAnisotropy: vk.True,
	}
	deviceInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueInfo},
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{features},
	}
	var device vk.Device
	if res := vk.CreateDevice(b.physicalDevice, &deviceInfo, nil, &device); res != vk.Success {
		return &InitError{Operation: "create device", Details: "vkCreateDevice", Err: fmt.Errorf("result %d", res)}
	}
	b.device = device
	var queue vk.Queue
	vk.GetDeviceQueue(device, b.queueFamily, 0, &queue)
	b.queue = queue
	return nil
}

func (b *Bundle) createCommandPool() error {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: b.queueFamily,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}
	var pool vk.CommandPool
	if res := vk.CreateCommandPool(b.device, &poolInfo, nil, &pool); res != vk.Success {
		return &InitError{Operation: "create command pool", Details: "vkCreateCommandPool", Err: fmt.Errorf("result %d", res)}
	}
	b.commandPool = pool
	return nil
}

// createSampler builds the linear, clamp-to-border sampler with transparent
// black border colour and 16x anisotropy the blend pipeline's bind group
// requires (spec.md §4.8). Clamp-to-border addressing is the engine's one
// required GPU feature.
func (b *Bundle) createSampler() error {
	info := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterLinear,
		MinFilter:               vk.FilterLinear,
		AddressModeU:            vk.SamplerAddressModeClampToBorder,
		AddressModeV:            vk.SamplerAddressModeClampToBorder,
		AddressModeW:            vk.SamplerAddressModeClampToBorder,
		BorderColor:             vk.BorderColorFloatTransparentBlack,
		AnisotropyEnable:        vk.True,
		MaxAnisotropy:           16,
		UnnormalizedCoordinates: vk.False,
	}
	var sampler vk.Sampler
	if res := vk.CreateSampler(b.device, &info, nil, &sampler); res != vk.Success {
		return &InitError{Operation: "create sampler", Details: "vkCreateSampler (clamp-to-border unsupported?)", Err: fmt.Errorf("result %d", res)}
	}
	b.sampler = sampler
	return nil
}

// createGlobalUniform uploads the ortho projection matrix once (spec.md
// §4.9 step 2) and never mutates it again.
func (b *Bundle) createGlobalUniform() error {
	proj := geom.Ortho(float64(b.width), float64(b.height))

	size := vk.DeviceSize(unsafe.Sizeof(proj))
	bufInfo := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  size,
		Usage: vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
	}
	var buf vk.Buffer
	if res := vk.CreateBuffer(b.device, &bufInfo, nil, &buf); res != vk.Success {
		return &InitError{Operation: "create uniform buffer", Details: "vkCreateBuffer", Err: fmt.Errorf("result %d", res)}
	}
	b.uniformBuffer = buf

	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.device, buf, &memReqs)
	memReqs.Deref()

	memTypeIndex, err := b.findMemoryType(memReqs.MemoryTypeBits,
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return &InitError{Operation: "create uniform buffer", Details: "no suitable memory type", Err: err}
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memTypeIndex,
	}
	var mem vk.DeviceMemory
	if res := vk.AllocateMemory(b.device, &allocInfo, nil, &mem); res != vk.Success {
		return &InitError{Operation: "create uniform buffer", Details: "vkAllocateMemory", Err: fmt.Errorf("result %d", res)}
	}
	b.uniformMemory = mem
	vk.BindBufferMemory(b.device, buf, mem, 0)

	var data unsafe.Pointer
	vk.MapMemory(b.device, mem, 0, size, 0, &data)
	copy(unsafe.Slice((*byte)(data), int(size)), matToBytes(proj))
	vk.UnmapMemory(b.device, mem)

	return b.createGlobalDescriptorSet()
}

func (b *Bundle) createGlobalDescriptorSet() error {
	binding := vk.DescriptorSetLayoutBinding{
		Binding:         0,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: 1,
		PBindings:    []vk.DescriptorSetLayoutBinding{binding},
	}
	var layout vk.DescriptorSetLayout
	if res := vk.CreateDescriptorSetLayout(b.device, &layoutInfo, nil, &layout); res != vk.Success {
		return &InitError{Operation: "create descriptor set layout", Details: "vkCreateDescriptorSetLayout", Err: fmt.Errorf("result %d", res)}
	}
	b.descriptorSetLayout = layout

	poolSize := vk.DescriptorPoolSize{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PoolSizeCount: 1,
		PPoolSizes:    []vk.DescriptorPoolSize{poolSize},
		MaxSets:       1,
	}
	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(b.device, &poolInfo, nil, &pool); res != vk.Success {
		return &InitError{Operation: "create descriptor pool", Details: "vkCreateDescriptorPool", Err: fmt.Errorf("result %d", res)}
	}
	b.descriptorPool = pool

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout},
	}
	sets := make([]vk.DescriptorSet, 1)
	if res := vk.AllocateDescriptorSets(b.device, &allocInfo, &sets[0]); res != vk.Success {
		return &InitError{Operation: "allocate descriptor set", Details: "vkAllocateDescriptorSets", Err: fmt.Errorf("result %d", res)}
	}
	b.descriptorSet = sets[0]

	bufInfo := vk.DescriptorBufferInfo{Buffer: b.uniformBuffer, Offset: 0, Range: vk.WholeSize}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          b.descriptorSet,
		DstBinding:      0,
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		PBufferInfo:     []vk.DescriptorBufferInfo{bufInfo},
	}
	vk.UpdateDescriptorSets(b.device, 1, []vk.WriteDescriptorSet{write}, 0, nil)
	return nil
}

func (b *Bundle) findMemoryType(typeFilter uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var memProps vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(b.physicalDevice, &memProps)
	memProps.Deref()
	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		t := memProps.MemoryTypes[i]
		t.Deref()
		if typeFilter&(1<<i) != 0 && (vk.MemoryPropertyFlags(t.PropertyFlags)&properties) == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no suitable memory type for filter %#x properties %#x", typeFilter, properties)
}

// Destroy releases every resource the bundle owns.
func (b *Bundle) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uniformMemory != vk.NullDeviceMemory {
		vk.FreeMemory(b.device, b.uniformMemory, nil)
	}
	if b.uniformBuffer != vk.NullBuffer {
		vk.DestroyBuffer(b.device, b.uniformBuffer, nil)
	}
	if b.descriptorPool != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(b.device, b.descriptorPool, nil)
	}
	if b.descriptorSetLayout != vk.NullDescriptorSetLayout {
		vk.DestroyDescriptorSetLayout(b.device, b.descriptorSetLayout, nil)
	}
	if b.sampler != vk.NullSampler {
		vk.DestroySampler(b.device, b.sampler, nil)
	}
	if b.commandPool != vk.NullCommandPool {
		vk.DestroyCommandPool(b.device, b.commandPool, nil)
	}
	if b.device != vk.NullDevice {
		vk.DestroyDevice(b.device, nil)
	}
	if b.instance != vk.NullInstance {
		vk.DestroyInstance(b.instance, nil)
	}
}

func safeCString(s string) string { return s + "\x00" }

func matToBytes(m geom.Mat4) []byte {
	buf := make([]byte, len(m)*4)
	for i, v := range m {
		bits := math.Float32bits(float32(v))
		buf[i*4+0] = byte(bits)
		buf[i*4+1] = byte(bits >> 8)
		buf[i*4+2] = byte(bits >> 16)
		buf[i*4+3] = byte(bits >> 24)
	}
	return buf
}
