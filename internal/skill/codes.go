package skill

import "fmt"

// weatherCodeText Mô tả tiếng Việt cho mã thời tiết WMO của Open-Meteo
var weatherCodeText = map[int]string{
	0:  "Trời quang",
	1:  "Trời quang đãng",
	2:  "Có mây rải rác",
	3:  "Nhiều mây",
	45: "Sương mù",
	48: "Sương mù đóng băng",
	51: "Mưa phùn nhẹ",
	53: "Mưa phùn vừa",
	55: "Mưa phùn dày",
	61: "Mưa nhỏ",
	63: "Mưa vừa",
	65: "Mưa to",
	80: "Mưa rào nhẹ",
	81: "Mưa rào vừa",
	82: "Mưa rào dữ dội",
	95: "Dông",
	96: "Dông kèm mưa đá nhẹ",
	99: "Dông kèm mưa đá lớn",
}

// describeWeatherCode Dịch mã WMO sang mô tả tiếng Việt, mã lạ thì nêu số mã
func describeWeatherCode(code int) string {
	if text, ok := weatherCodeText[code]; ok {
		return text
	}
	return fmt.Sprintf("Thời tiết mã %d", code)
}
