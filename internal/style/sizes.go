package style

// fontSizeMap maps traditional Chinese type-size names to points.
var fontSizeMap = map[string]float64{
	"初号": 42,
	"小初": 36,
	"一号": 26,
	"小一": 24,
	"二号": 22,
	"小二": 18,
	"三号": 16,
	"小三": 15,
	"四号": 14,
	"小四": 12,
	"五号": 10.5,
	"小五": 9,
	"六号": 7.5,
	"小六": 6.5,
	"七号": 5.5,
	"八号": 5,
}

// PointsForName resolves a traditional size name to points.
func PointsForName(name string) (float64, bool) {
	pt, ok := fontSizeMap[name]
	return pt, ok
}

// SizeNames returns the known size names in descending point order.
func SizeNames() []string {
	return []string{
		"初号", "小初", "一号", "小一", "二号", "小二", "三号", "小三",
		"四号", "小四", "五号", "小五", "六号", "小六", "七号", "八号",
	}
}
