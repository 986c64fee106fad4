// Package vertex defines the vertex formats and primitive topologies
// accepted by the gles2 driver.
//
// Each vertex [Type] has a fixed memory layout described as a
// gputypes.VertexBufferLayout. Attribute locations are shared by all
// built-in shaders, so any vertex type can be drawn with any material.
package vertex
