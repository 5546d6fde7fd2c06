package hal

import "testing"

func TestRGB565RoundTrip(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0, 0, 0, 0x0000},
		{255, 255, 255, 0xFFFF},
		{255, 0, 0, 0xF800},
		{0, 255, 0, 0x07E0},
		{0, 0, 255, 0x001F},
	}
	for _, tt := range tests {
		p := RGB565(tt.r, tt.g, tt.b)
		if p != tt.want {
			t.Fatalf("RGB565(%d,%d,%d) = %#04x, want %#04x", tt.r, tt.g, tt.b, p, tt.want)
		}
		r, g, b := RGB888From565(p)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Fatalf("RGB888From565(%#04x) = %d,%d,%d", p, r, g, b)
		}
	}
}

func TestClearRGB565(t *testing.T) {
	buf := make([]byte, 7)
	clearRGB565(buf, 0, 0, 255)
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] != 0x1F || buf[i+1] != 0x00 {
			t.Fatalf("pixel %d = %#02x %#02x", i/2, buf[i], buf[i+1])
		}
	}
	if buf[6] != 0 {
		t.Fatal("odd trailing byte written")
	}
}
