package forecast

// currentCityNames maps the historical observation-point names and codes
// that still appear in forecast documents to the municipality that exists
// today. The list follows the agency's own renaming notes.
var currentCityNames = map[string]string{
	"古川":   "大崎市",
	"鷹巣":   "北秋田市",
	"小名浜":  "いわき市",
	"若松":   "会津若松市",
	"田島":   "南会津町",
	"八丈島":  "八丈町",
	"父島":   "小笠原村",
	"高田":   "上越市",
	"相川":   "佐渡市",
	"津川":   "阿賀町",
	"伏木":   "高岡市",
	"河口湖":  "富士河口湖町",
	"網代":   "熱海市",
	"石廊崎":  "南伊豆町",
	"風屋":   "十津川村",
	"潮岬":   "串本町",
	"日和佐":  "美波町",
	"室戸岬":  "室戸市",
	"厳原":   "対馬市",
	"福江":   "五島市",
	"阿蘇乙姫": "阿蘇市",
	"牛深":   "天草市",
	"油津":   "日南市",
	"種子島":  "西之表市",
	"沖永良部": "和泊町",
	"石垣島":  "石垣市",
	"与那国島": "与那国町",
	"東京":   "千代田区",
	"名瀬":   "奄美市",
	"八幡":   "北九州市",

	"34216": "大崎市",
	"32126": "北秋田市",
	"36846": "いわき市",
	"36361": "会津若松市",
	"36641": "南会津町",
	"44263": "八丈町",
	"44301": "小笠原村",
	"54651": "上越市",
	"54157": "佐渡市",
	"54421": "阿賀町",
	"55091": "高岡市",
	"49251": "富士河口湖町",
	"50281": "熱海市",
	"50561": "南伊豆町",
	"64227": "十津川村",
	"65356": "串本町",
	"71266": "美波町",
	"74372": "室戸市",
	"84072": "対馬市",
	"84536": "五島市",
	"86111": "阿蘇市",
	"86491": "天草市",
	"87492": "日南市",
	"88612": "西之表市",
	"88971": "和泊町",
	"94081": "石垣市",
	"94017": "与那国町",
	"44132": "千代田区",
	"88837": "奄美市",
	"82056": "北九州市",
}

// CurrentCityName resolves the historical name or station code of a
// forecast observation point to the current municipality name.
func CurrentCityName(old string) (string, bool) {
	name, ok := currentCityNames[old]
	return name, ok
}
