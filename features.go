package gles2

import (
	"strconv"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

// maxTextureMaxAnisotropy is GL_MAX_TEXTURE_MAX_ANISOTROPY_EXT.
const maxTextureMaxAnisotropy = 0x84FF

// Extensions the driver looks for.
const (
	extElementIndexUint = "GL_OES_element_index_uint"
	extAnisotropic      = "GL_EXT_texture_filter_anisotropic"
	extBlendMinMax      = "GL_EXT_blend_minmax"
)

// Features describes what the GL context supports.
type Features struct {
	Vendor   string
	Renderer string
	Version  string

	// Major and Minor are the OpenGL ES version, 0.0 when the version
	// string could not be parsed.
	Major, Minor int

	// ElementIndexUint reports support for 32-bit indices.
	ElementIndexUint bool

	// Anisotropic reports anisotropic filtering; MaxAnisotropy is the
	// largest level accepted.
	Anisotropic   bool
	MaxAnisotropy int

	// BlendMinMax reports the MIN and MAX blend equations.
	BlendMinMax bool

	// TextureUnits is the number of fragment texture units.
	TextureUnits int

	// MaxTextureSize is the largest texture dimension.
	MaxTextureSize int

	extensions map[string]struct{}
}

// HasExtension reports whether the context advertises name. The "GL_"
// prefix is optional.
func (f Features) HasExtension(name string) bool {
	if !strings.HasPrefix(name, "GL_") {
		name = "GL_" + name
	}
	_, ok := f.extensions[name]
	return ok
}

// Extensions returns the number of advertised extensions.
func (f Features) Extensions() int { return len(f.extensions) }

// AdapterInfo classifies the GPU from the renderer and vendor strings.
func (f Features) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{
		Name: f.Renderer,
		Type: adapterType(f.Vendor, f.Renderer),
	}
}

func adapterType(vendor, renderer string) gpucontext.AdapterType {
	s := strings.ToLower(vendor + " " + renderer)
	switch {
	case containsAny(s, "llvmpipe", "softpipe", "swiftshader", "software", "swrast"):
		return gpucontext.AdapterTypeSoftware
	case containsAny(s, "intel", "mali", "adreno", "powervr", "videocore", "apple", "tegra"):
		return gpucontext.AdapterTypeIntegrated
	case containsAny(s, "nvidia", "geforce", "radeon", "amd", "ati "):
		return gpucontext.AdapterTypeDiscrete
	}
	return gpucontext.AdapterTypeUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// detectFeatures queries f for its version, extensions and limits.
func detectFeatures(f GL) Features {
	feat := Features{
		Vendor:     f.GetString(gl.VENDOR),
		Renderer:   f.GetString(gl.RENDERER),
		Version:    f.GetString(gl.VERSION),
		extensions: make(map[string]struct{}),
	}
	feat.Major, feat.Minor = parseVersion(feat.Version)

	for _, ext := range strings.Fields(f.GetString(gl.EXTENSIONS)) {
		feat.extensions[ext] = struct{}{}
	}

	// ES 3.0 made 32-bit indices and min/max blending core.
	es3 := feat.Major >= 3
	feat.ElementIndexUint = es3 || feat.HasExtension(extElementIndexUint)
	feat.BlendMinMax = es3 || feat.HasExtension(extBlendMinMax)

	var n int32
	f.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &n)
	feat.TextureUnits = int(n)

	n = 0
	f.GetIntegerv(gl.MAX_TEXTURE_SIZE, &n)
	feat.MaxTextureSize = int(n)

	if feat.HasExtension(extAnisotropic) {
		n = 0
		f.GetIntegerv(maxTextureMaxAnisotropy, &n)
		feat.MaxAnisotropy = int(n)
		feat.Anisotropic = n > 1
	}
	return feat
}

// parseVersion extracts major and minor from "OpenGL ES 3.0 vendor..." or
// a bare "3.0 ...".
func parseVersion(v string) (major, minor int) {
	fields := strings.Fields(v)
	for i, f := range fields {
		if f == "ES" && i+1 < len(fields) {
			return splitVersion(fields[i+1])
		}
	}
	if len(fields) > 0 {
		return splitVersion(fields[0])
	}
	return 0, 0
}

func splitVersion(s string) (major, minor int) {
	majorStr, minorStr, _ := strings.Cut(s, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return 0, 0
	}
	if i := strings.IndexFunc(minorStr, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		minorStr = minorStr[:i]
	}
	minor, _ = strconv.Atoi(minorStr)
	return major, minor
}
