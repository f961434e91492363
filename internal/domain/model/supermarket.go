package model

type Supermarket struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// 検索の距離ソートに使う現在地。
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
