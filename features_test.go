package gles2

import (
	"testing"

	"github.com/gogpu/gles2/internal/glrecord"
	"github.com/gogpu/gpucontext"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in           string
		major, minor int
	}{
		{"OpenGL ES 3.0 Mesa 23.2.1", 3, 0},
		{"OpenGL ES 3.2 NVIDIA 535.54", 3, 2},
		{"OpenGL ES 2.0 (ANGLE 2.1.0)", 2, 0},
		{"3.1", 3, 1},
		{"3.1.0-devel", 3, 1},
		{"", 0, 0},
		{"OpenGL ES", 0, 0},
		{"garbage", 0, 0},
	}
	for _, tt := range tests {
		major, minor := parseVersion(tt.in)
		if major != tt.major || minor != tt.minor {
			t.Errorf("parseVersion(%q) = %d.%d, want %d.%d", tt.in, major, minor, tt.major, tt.minor)
		}
	}
}

func TestAdapterType(t *testing.T) {
	tests := []struct {
		vendor, renderer string
		want             gpucontext.AdapterType
	}{
		{"Mesa", "llvmpipe (LLVM 17.0.6, 256 bits)", gpucontext.AdapterTypeSoftware},
		{"Google Inc.", "Google SwiftShader", gpucontext.AdapterTypeSoftware},
		{"ARM", "Mali-G78", gpucontext.AdapterTypeIntegrated},
		{"Qualcomm", "Adreno (TM) 650", gpucontext.AdapterTypeIntegrated},
		{"Intel", "Mesa Intel(R) UHD Graphics 620", gpucontext.AdapterTypeIntegrated},
		{"NVIDIA Corporation", "NVIDIA GeForce RTX 3070/PCIe/SSE2", gpucontext.AdapterTypeDiscrete},
		{"AMD", "AMD Radeon RX 6800", gpucontext.AdapterTypeDiscrete},
		{"gogpu", "glrecord", gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		if got := adapterType(tt.vendor, tt.renderer); got != tt.want {
			t.Errorf("adapterType(%q, %q) = %v, want %v", tt.vendor, tt.renderer, got, tt.want)
		}
	}
}

func TestDetectFeaturesES3(t *testing.T) {
	f := detectFeatures(glrecord.New())
	if f.Major != 3 || f.Minor != 0 {
		t.Errorf("version = %d.%d, want 3.0", f.Major, f.Minor)
	}
	if !f.ElementIndexUint || !f.BlendMinMax {
		t.Error("ES 3.0 core features missing")
	}
	if !f.Anisotropic || f.MaxAnisotropy != 16 {
		t.Errorf("anisotropy = %v/%d, want true/16", f.Anisotropic, f.MaxAnisotropy)
	}
	if f.TextureUnits != 8 || f.MaxTextureSize != 4096 {
		t.Errorf("units=%d size=%d", f.TextureUnits, f.MaxTextureSize)
	}
	if f.Extensions() != 3 {
		t.Errorf("Extensions() = %d, want 3", f.Extensions())
	}
	if !f.HasExtension("EXT_blend_minmax") || !f.HasExtension("GL_EXT_blend_minmax") {
		t.Error("HasExtension does not accept both spellings")
	}
	if f.HasExtension("GL_KHR_debug") {
		t.Error("unadvertised extension reported")
	}
}

func TestDetectFeaturesES2(t *testing.T) {
	rec := glrecord.New()
	rec.Version = "OpenGL ES 2.0 glrecord"
	rec.Extensions = nil
	f := detectFeatures(rec)
	if f.Major != 2 {
		t.Errorf("Major = %d, want 2", f.Major)
	}
	if f.ElementIndexUint || f.BlendMinMax || f.Anisotropic {
		t.Errorf("features without extensions: %+v", f)
	}

	rec.Extensions = []string{"GL_OES_element_index_uint", "GL_EXT_texture_filter_anisotropic"}
	rec.Integers[glrecord.MaxTextureMaxAnisotropy] = 1
	f = detectFeatures(rec)
	if !f.ElementIndexUint {
		t.Error("32-bit indices not detected from the extension")
	}
	if f.Anisotropic {
		t.Error("anisotropy of 1 reported as anisotropic filtering")
	}
}
