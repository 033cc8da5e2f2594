package location

// staticPlaces Bảng tọa độ dự phòng cố định của các tỉnh/thành lớn.
// Key là tên đã thường hóa; bảng này không bao giờ bị ghi đè bởi dữ liệu
// tải về (kể cả khi lần tải thất bại).
var staticPlaces = map[string]Place{
	"hà nội":       {Name: "Hà Nội", Latitude: 21.0285, Longitude: 105.8542},
	"hồ chí minh":  {Name: "Hồ Chí Minh", Latitude: 10.8231, Longitude: 106.6297},
	"đà nẵng":      {Name: "Đà Nẵng", Latitude: 16.0545, Longitude: 108.2022},
	"hải phòng":    {Name: "Hải Phòng", Latitude: 20.8449, Longitude: 106.6881},
	"cần thơ":      {Name: "Cần Thơ", Latitude: 10.0452, Longitude: 105.7469},
	"huế":          {Name: "Huế", Latitude: 16.4637, Longitude: 107.5909},
	"nha trang":    {Name: "Nha Trang", Latitude: 12.2388, Longitude: 109.1967},
	"đà lạt":       {Name: "Đà Lạt", Latitude: 11.9404, Longitude: 108.4583},
	"vũng tàu":     {Name: "Vũng Tàu", Latitude: 10.3460, Longitude: 107.0843},
	"quy nhơn":     {Name: "Quy Nhơn", Latitude: 13.7830, Longitude: 109.2197},
	"buôn ma thuột": {Name: "Buôn Ma Thuột", Latitude: 12.6667, Longitude: 108.0500},
	"vinh":         {Name: "Vinh", Latitude: 18.6796, Longitude: 105.6813},
	"thanh hóa":    {Name: "Thanh Hóa", Latitude: 19.8067, Longitude: 105.7852},
	"hạ long":      {Name: "Hạ Long", Latitude: 20.9500, Longitude: 107.0833},
	"phú quốc":     {Name: "Phú Quốc", Latitude: 10.2899, Longitude: 103.9840},
}
