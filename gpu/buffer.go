package gpu

// Buffer is a device-resident array of float vertex data. Buffers are
// write-once: the data is uploaded at creation and the handle stays valid
// for the life of the device.
type Buffer struct {
	handle uint32
	target BufferTarget
	usage  BufferUsage
	n      int
}

// NewBuffer uploads data to a new device buffer bound at target.
func NewBuffer(dev Device, data []float32, target BufferTarget, usage BufferUsage) *Buffer {
	h := dev.GenBuffer()
	dev.BindBuffer(target, h)
	dev.BufferData(target, data, usage)
	return &Buffer{handle: h, target: target, usage: usage, n: len(data)}
}

func (b *Buffer) Handle() uint32       { return b.handle }
func (b *Buffer) Target() BufferTarget { return b.target }
func (b *Buffer) Usage() BufferUsage   { return b.usage }

// Len returns the number of float values uploaded.
func (b *Buffer) Len() int { return b.n }
