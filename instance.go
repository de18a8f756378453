package vkr

import (
	"fmt"
	"runtime"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// InitializeHeadless initializes the Vulkan loader without a windowing
// layer. Callers with a window must instead install the window system's
// proc address (for GLFW: vk.SetGetInstanceProcAddr) and call vk.Init
// before touching anything else in this package.
func InitializeHeadless() error {
	err := vk.SetDefaultGetInstanceProcAddr()
	if err != nil {
		return err
	}
	err = vk.Init()
	if err != nil {
		return err
	}
	return nil
}

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns a Vulkan compatible version representation
func (v *Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// App is used to provide information about this specific application to Vulkan
type App struct {
	// Name the name of the application
	Name string
	// Engine the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API (i.e. 1.0.0)
	APIVersion Version

	// EnabledLayers the enabled layers
	EnabledLayers []string

	// EnabledExtensions the enabled extensions
	EnabledExtensions []string
}

// SupportedLayers returns a list of supported layers for use by Vulkan.
// The loader must have been initialized first.
func SupportedLayers() ([]string, error) {
	var instanceLayerLen uint32
	err := vk.Error(vk.EnumerateInstanceLayerProperties(&instanceLayerLen, nil))
	if err != nil {
		return nil, err
	}
	instanceLayer := make([]vk.LayerProperties, instanceLayerLen)
	err = vk.Error(vk.EnumerateInstanceLayerProperties(&instanceLayerLen, instanceLayer))
	if err != nil {
		return nil, err
	}
	layerNames := make([]string, 0)
	for _, layer := range instanceLayer {
		layer.Deref()
		layerNames = append(layerNames,
			vk.ToString(layer.LayerName[:]))
	}
	return layerNames, nil
}

// SupportedExtensions returns a list of supported instance extensions.
// The loader must have been initialized first.
func SupportedExtensions() ([]string, error) {
	var instanceExtLen uint32
	err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &instanceExtLen, nil))
	if err != nil {
		return nil, err
	}
	instanceExt := make([]vk.ExtensionProperties, instanceExtLen)
	err = vk.Error(vk.EnumerateInstanceExtensionProperties("", &instanceExtLen, instanceExt))
	if err != nil {
		return nil, err
	}
	extNames := make([]string, 0)
	for _, ext := range instanceExt {
		ext.Deref()
		extNames = append(extNames,
			vk.ToString(ext.ExtensionName[:]))
	}
	return extNames, nil
}

// EnableDebugging turns on the Khronos validation layer and the debug
// report extension. Validation output is routed through the package
// logger, see SetLogger.
func (a *App) EnableDebugging() error {
	_, err := a.EnableLayer("VK_LAYER_KHRONOS_validation")
	if err != nil {
		return err
	}
	a.EnableExtension("VK_EXT_debug_report")
	return nil
}

// EnableLayer enables a specific layer, erroring if the layer is not
// supported by the installed loader.
func (a *App) EnableLayer(layer string) (*App, error) {
	if a.EnabledLayers == nil {
		a.EnabledLayers = make([]string, 0)
	}
	layers, err := SupportedLayers()
	if err != nil {
		return a, fmt.Errorf("error getting supported layers: %w", err)
	}
	for _, l := range layers {
		if l == layer {
			a.EnabledLayers = append(a.EnabledLayers, layer)
			return a, nil
		}
	}
	return a, fmt.Errorf("validation layer '%s' not found", layer)
}

// Enable an extension for use by the application
func (a *App) EnableExtension(extension string) *App {
	if a.EnabledExtensions == nil {
		a.EnabledExtensions = make([]string, 0)
	}
	a.EnabledExtensions = append(a.EnabledExtensions, extension)
	return a
}

// EnableExtensions enables several extensions at once, typically the
// list the windowing layer reports as required for surface creation.
func (a *App) EnableExtensions(extensions []string) *App {
	for _, extension := range extensions {
		a.EnableExtension(extension)
	}
	return a
}

//VKApplicationInfo creates a structure representing this application in a Vulkan friendly format
func (a *App) VKApplicationInfo() vk.ApplicationInfo {

	if a.APIVersion.Major < 1 {
		a.APIVersion.Major = 1
	}

	var appInfo = vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         a.APIVersion.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
	return appInfo
}

// The enumerate portability bit from VK_KHR_portability_enumeration,
// which this binding predates.
const instanceCreateEnumeratePortabilityBit = 0x00000001

// CreateInstance creates the Vulkan Instance
func (a *App) CreateInstance() (*Instance, error) {
	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	var flags vk.InstanceCreateFlags
	if runtime.GOOS == "darwin" {
		// macOS drivers sit behind MoltenVK, a portability
		// implementation. It only enumerates when the portability
		// extension and the matching create flag are both requested.
		extensions = append(extensions,
			safeString("VK_KHR_portability_enumeration"),
			safeString("VK_KHR_get_physical_device_properties2"))
		flags = vk.InstanceCreateFlags(instanceCreateEnumeratePortabilityBit)
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		Flags:                   flags,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}

	err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance.VKInstance))
	if err != nil {
		return nil, err
	}
	vk.InitInstance(instance.VKInstance)

	logger().Info("created instance",
		"app", a.Name,
		"layers", len(layers),
		"extensions", len(extensions))

	return instance, nil
}

//PhysicalDevices returns a list of physical devices known to Vulkan
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var deviceCount uint32
	err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, nil))
	if err != nil {
		return nil, err
	}

	if deviceCount == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	err = vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, devices))
	if err != nil {
		return nil, err
	}

	ret := make([]*PhysicalDevice, deviceCount)
	for i, device := range devices {
		ret[i] = &PhysicalDevice{}
		ret[i].VKPhysicalDevice = device

		vk.GetPhysicalDeviceProperties(device, &ret[i].VKPhysicalDeviceProperties)

		ret[i].VKPhysicalDeviceProperties.Deref()
		ret[i].DeviceName = vk.ToString(ret[i].VKPhysicalDeviceProperties.DeviceName[:])
	}
	return ret, nil
}

// UseDefaultDebugCallback routes validation layer reports to the package
// logger. The callback handle is destroyed along with the instance.
func (i *Instance) UseDefaultDebugCallback() error {
	return i.SetDebugCallback(debugReportToLog)
}

func (i *Instance) SetDebugCallback(callback vk.DebugReportCallbackFunc) error {
	ret := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit |
			vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: callback,
	}, nil, &i.VKDebugCallback)
	return vk.Error(ret)
}

func debugReportToLog(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	log := logger().With("layer", pLayerPrefix, "code", messageCode)
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Error(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Warn(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Warn(pMessage)
	default:
		log.Debug(pMessage)
	}
	return vk.Bool32(vk.False)
}

//Instance is an instance of the Vulkan subsystem
type Instance struct {
	//VKInstance is the native Vulkan instance object
	VKInstance vk.Instance

	//VKDebugCallback is the installed debug report hook, if any
	VKDebugCallback vk.DebugReportCallback
}

// Destroy tears down the debug hook, if one was installed, and then the
// instance itself. It must run after every object created from the
// instance is gone.
func (i *Instance) Destroy() error {
	if i.VKDebugCallback != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(i.VKInstance, i.VKDebugCallback, nil)
		i.VKDebugCallback = vk.NullDebugReportCallback
	}
	vk.DestroyInstance(i.VKInstance, nil)
	return nil
}
