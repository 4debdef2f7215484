package style

import "fmt"

// Default returns the standard catalog: the general-purpose style set
// covering every block kind.
func Default() *Catalog {
	return New(map[string]*Spec{
		"heading1": {
			FontCN: str("宋体"), FontEN: str("Times New Roman"),
			SizeName: str("小三"), Bold: boolp(true), Color: str("#000000"),
			SpaceBefore: num(12), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("left"),
		},
		"heading2": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("四号"), Bold: boolp(true), Color: str("#000000"),
			SpaceBefore: num(10), SpaceAfter: num(5),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("left"),
		},
		"heading3": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("小四"), Bold: boolp(true), Color: str("#000000"),
			SpaceBefore: num(8), SpaceAfter: num(4),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("left"),
		},
		"heading4": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("小四"), Bold: boolp(false), Color: str("#000000"),
			SpaceBefore: num(6), SpaceAfter: num(3),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("left"),
		},
		"body": {
			FontCN: str("宋体"), FontEN: str("Times New Roman"),
			SizeName: str("小四"), Bold: boolp(false), Color: str("#000000"),
			SpaceBefore: num(0), SpaceAfter: num(0),
			LineSpacing: spacing(LineSpacingExact, 20),
			FirstLineIndent: num(2), Alignment: str("left"),
		},
		"caption": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("小五"), Bold: boolp(false), Color: str("#000000"),
			SpaceBefore: num(6), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingMultiple, 1.5), Alignment: str("center"),
		},
		"code": {
			FontCN: str("宋体"), FontEN: str("Consolas"),
			SizeName: str("五号"), Bold: boolp(false),
			Color: str("#333333"), Background: str("#f5f5f5"),
			SpaceBefore: num(6), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingMultiple, 1.0), Alignment: str("left"),
		},
		"quote": {
			FontCN: str("楷体"), FontEN: str("Times New Roman"),
			SizeName: str("小四"), Bold: boolp(false), Italic: boolp(true),
			Color: str("#666666"),
			SpaceBefore: num(6), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingExact, 20),
			LeftIndent: num(1), Alignment: str("left"),
		},
		"image": {
			Alignment: str("center"), MaxWidth: num(15),
			SpaceBefore: num(6), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingMultiple, 1.5),
		},
		"table": {
			FontCN: str("宋体"), FontEN: str("Times New Roman"),
			SizeName: str("五号"), HeaderBold: boolp(true), Alignment: str("center"),
		},
		"formula": {
			Alignment: str("center"),
			SpaceBefore: num(6), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingMultiple, 1.5),
		},
	})
}

// Academic returns the thesis/paper preset: centered bold headings,
// justified body with two-character indent.
func Academic() *Catalog {
	return New(map[string]*Spec{
		"heading1": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("三号"), Bold: boolp(true),
			SpaceBefore: num(24), SpaceAfter: num(12),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("center"),
		},
		"heading2": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("四号"), Bold: boolp(true),
			SpaceBefore: num(12), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("left"),
		},
		"heading3": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("小四"), Bold: boolp(true),
			SpaceBefore: num(6), SpaceAfter: num(3),
			LineSpacing: spacing(LineSpacingExact, 20), Alignment: str("left"),
		},
		"body": {
			FontCN: str("宋体"), FontEN: str("Times New Roman"),
			SizeName:    str("小四"),
			LineSpacing: spacing(LineSpacingExact, 20),
			FirstLineIndent: num(2), Alignment: str("justify"),
		},
		"caption": {
			FontCN: str("宋体"), FontEN: str("Times New Roman"),
			SizeName: str("五号"),
			LineSpacing: spacing(LineSpacingMultiple, 1.0), Alignment: str("center"),
		},
	})
}

// Official returns the government-document preset: 方正小标宋 titles,
// 仿宋 body at 三号, fixed 28pt leading throughout.
func Official() *Catalog {
	return New(map[string]*Spec{
		"heading1": {
			FontCN: str("方正小标宋简体"), FontEN: str("Times New Roman"),
			SizeName: str("二号"), Bold: boolp(false),
			SpaceBefore: num(0), SpaceAfter: num(0),
			LineSpacing: spacing(LineSpacingExact, 28), Alignment: str("center"),
		},
		"heading2": {
			FontCN: str("黑体"), FontEN: str("Times New Roman"),
			SizeName: str("三号"), Bold: boolp(false),
			SpaceBefore: num(12), SpaceAfter: num(6),
			LineSpacing: spacing(LineSpacingExact, 28), Alignment: str("left"),
		},
		"heading3": {
			FontCN: str("楷体"), FontEN: str("Times New Roman"),
			SizeName: str("三号"), Bold: boolp(false),
			SpaceBefore: num(6), SpaceAfter: num(3),
			LineSpacing: spacing(LineSpacingExact, 28), Alignment: str("left"),
		},
		"body": {
			FontCN: str("仿宋"), FontEN: str("Times New Roman"),
			SizeName:    str("三号"),
			LineSpacing: spacing(LineSpacingExact, 28),
			FirstLineIndent: num(2), Alignment: str("justify"),
		},
		"caption": {
			FontCN: str("楷体"), FontEN: str("Times New Roman"),
			SizeName: str("小四"),
			LineSpacing: spacing(LineSpacingExact, 28), Alignment: str("center"),
		},
	})
}

// Presets lists the built-in preset names.
func Presets() []string {
	return []string{"default", "academic", "official"}
}

// Builtin resolves a preset name to its catalog.
func Builtin(name string) (*Catalog, error) {
	switch name {
	case "default", "":
		return Default(), nil
	case "academic":
		return Academic(), nil
	case "official":
		return Official(), nil
	}
	return nil, fmt.Errorf("unknown style preset %q", name)
}
