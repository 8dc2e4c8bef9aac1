package utils

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/zooyer/seatdxf"
	"github.com/zooyer/seatdxf/core"
	"github.com/zooyer/seatdxf/entities"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newInsert(point, scale, extrusion core.Point, rotation float64) *entities.Insert {
	return &entities.Insert{
		BaseEntity:     entities.BaseEntity{TypeName: "INSERT"},
		InsertionPoint: point,
		Scale:          scale,
		Rotation:       rotation,
		Extrusion:      extrusion,
	}
}

func TestTransformPoint(t *testing.T) {
	var one = core.Point{X: 1, Y: 1, Z: 1}

	var tests = []struct {
		name string
		ins  *entities.Insert
		base core.Point
		in   core.Point
		want core.Point
	}{
		{"translate", newInsert(core.Point{X: 10, Y: 20}, one, core.ZAxis, 0), core.Point{}, core.Point{X: 1, Y: 2}, core.Point{X: 11, Y: 22}},
		{"base point", newInsert(core.Point{X: 10}, one, core.ZAxis, 0), core.Point{X: 1, Y: 1}, core.Point{X: 1, Y: 1}, core.Point{X: 10}},
		{"rotate 90", newInsert(core.Point{}, one, core.ZAxis, 90), core.Point{}, core.Point{X: 1}, core.Point{Y: 1}},
		{"scale", newInsert(core.Point{}, core.Point{X: 2, Y: 3, Z: 4}, core.ZAxis, 0), core.Point{}, core.Point{X: 1, Y: 1, Z: 1}, core.Point{X: 2, Y: 3, Z: 4}},
		{"mirrored ocs", newInsert(core.Point{X: 1}, one, core.Point{Z: -1}, 0), core.Point{}, core.Point{X: 2, Y: 1}, core.Point{X: -3, Y: 1}},
		{"ocs along x", newInsert(core.Point{X: 1, Y: 2, Z: 3}, one, core.XAxis, 0), core.Point{}, core.Point{}, core.Point{X: 3, Y: 1, Z: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransformPoint(tt.in, tt.ins, tt.base)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("TransformPoint (-want +got):\n%s", diff)
			}
		})
	}

	degenerate := newInsert(core.Point{}, one, core.Point{}, 0)
	if _, err := TransformPoint(core.Point{}, degenerate, core.Point{}); !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("期望 ErrDegenerateVector, 得到 %v", err)
	}
}

func TestCombineInserts(t *testing.T) {
	var one = core.Point{X: 1, Y: 1, Z: 1}

	parent, err := InsertTransform(newInsert(core.Point{X: 100}, core.Point{X: 2, Y: 2, Z: 1}, core.ZAxis, 90), core.Point{})
	if err != nil {
		t.Fatal(err)
	}
	child, err := InsertTransform(newInsert(core.Point{X: 5}, one, core.ZAxis, 0), core.Point{})
	if err != nil {
		t.Fatal(err)
	}

	// 子块 (1,0) -> (6,0) -> 缩放 (12,0) -> 旋转 (0,12) -> 平移 (100,12)
	got := CombineInserts(parent, child).Apply(core.Point{X: 1})
	if diff := cmp.Diff(core.Point{X: 100, Y: 12}, got, approx); diff != "" {
		t.Errorf("CombineInserts (-want +got):\n%s", diff)
	}

	if got = CombineInserts(Identity, child).Apply(core.Point{X: 1}); got != (core.Point{X: 6}) {
		t.Errorf("与单位变换组合不应改变结果: %v", got)
	}
}

func TestTransformBBox(t *testing.T) {
	tr, err := InsertTransform(newInsert(core.Point{X: 10, Y: 10}, core.Point{X: 1, Y: 1, Z: 1}, core.ZAxis, 45), core.Point{})
	if err != nil {
		t.Fatal(err)
	}

	local := core.BBox{Max: core.Point{X: 1, Y: 1}}
	got := TransformBBox(local, tr)

	h := 0.7071067811865476
	want := core.BBox{Min: core.Point{X: 10 - h, Y: 10}, Max: core.Point{X: 10 + h, Y: 10 + 2*h}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("TransformBBox (-want +got):\n%s", diff)
	}
}

func TestGetEntityBBoxWCS(t *testing.T) {
	doc, err := seatdxf.Open("../testdata/seats.dxf")
	if err != nil {
		t.Fatal(err)
	}

	var tests = []struct {
		handle string
		want   core.BBox
	}{
		{"100", core.BBox{Min: core.Point{X: 5, Y: 3}, Max: core.Point{X: 7, Y: 7}}},
		{"120", core.BBox{Min: core.Point{X: 50, Y: 50}, Max: core.Point{X: 50, Y: 50}}},
		{"180", core.BBox{Min: core.Point{X: 15, Y: 15}, Max: core.Point{X: 25, Y: 25}}},
		// 0° 到 90° 的圆弧只占第一象限
		{"190", core.BBox{Min: core.Point{}, Max: core.Point{X: 10, Y: 10}}},
		{"200", core.BBox{Min: core.Point{X: 100}, Max: core.Point{X: 105, Y: 4}}},
	}

	for _, tt := range tests {
		var entity entities.Entity
		for _, e := range doc.Entities {
			if e.ID() == tt.handle {
				entity = e
			}
		}
		if entity == nil {
			t.Fatalf("找不到实体 %s", tt.handle)
		}

		got, err := GetEntityBBoxWCS(doc, entity)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.want, got, approx); diff != "" {
			t.Errorf("实体 %s 包围盒不符 (-want +got):\n%s", tt.handle, diff)
		}
	}
}

func TestOCSTransform(t *testing.T) {
	world, err := OCSTransform(core.ZAxis)
	if err != nil {
		t.Fatal(err)
	}
	if world != Identity {
		t.Errorf("世界 Z 轴应返回单位变换, 得到 %+v", world)
	}

	flipped, err := OCSTransform(core.Vec3{Z: -1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(core.Point{X: -5, Y: 3, Z: -2}, flipped.Apply(core.Point{X: 5, Y: 3, Z: 2}), approx); diff != "" {
		t.Errorf("反向拉伸 (-want +got):\n%s", diff)
	}

	if _, err = OCSTransform(core.Vec3{}); !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("期望 ErrDegenerateVector, 得到 %v", err)
	}
}

func TestGetAttr(t *testing.T) {
	ins := &entities.Insert{Attributes: []*entities.Attrib{
		{Tag: "Seat", Text: "B7"},
		{Tag: "ZONE", Text: "VIP"},
	}}

	if got := GetAttr(ins, "SEAT"); got != "B7" {
		t.Errorf("GetAttr(SEAT) = %q", got)
	}
	if got := GetAttr(ins, "row"); got != "" {
		t.Errorf("GetAttr(row) = %q", got)
	}
	if diff := cmp.Diff(map[string]string{"SEAT": "B7", "ZONE": "VIP"}, GetAttrs(ins)); diff != "" {
		t.Errorf("GetAttrs (-want +got):\n%s", diff)
	}
}
