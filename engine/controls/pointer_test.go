package controls

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-tutorials/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestPointerPosition(t *testing.T) {
	tests := []struct {
		name    string
		client  common.Point
		rect    common.Rect
		backing common.Size
		want    common.Point
	}{
		{
			name:    "same size at origin",
			client:  common.Point{X: 10, Y: 20},
			rect:    common.Rect{Right: 360, Bottom: 180},
			backing: common.Size{Width: 360, Height: 180},
			want:    common.Point{X: 10, Y: 20},
		},
		{
			name:    "offset element",
			client:  common.Point{X: 110, Y: 70},
			rect:    common.Rect{Left: 100, Top: 50, Right: 460, Bottom: 230},
			backing: common.Size{Width: 360, Height: 180},
			want:    common.Point{X: 10, Y: 20},
		},
		{
			name:    "high dpi backing buffer",
			client:  common.Point{X: 50, Y: 25},
			rect:    common.Rect{Right: 200, Bottom: 100},
			backing: common.Size{Width: 400, Height: 200},
			want:    common.Point{X: 100, Y: 50},
		},
		{
			name:    "outside the rect",
			client:  common.Point{X: -20, Y: 150},
			rect:    common.Rect{Right: 100, Bottom: 100},
			backing: common.Size{Width: 100, Height: 100},
			want:    common.Point{X: -20, Y: 150},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointerPosition(tt.client, tt.rect, tt.backing)
			if !mgl32.FloatEqual(got.X, tt.want.X) || !mgl32.FloatEqual(got.Y, tt.want.Y) {
				t.Errorf("PointerPosition(%v, %v, %v) = %v, want %v", tt.client, tt.rect, tt.backing, got, tt.want)
			}
		})
	}
}
