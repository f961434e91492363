package model

// ある店舗で最後に確認できた在庫数。
// (Barcode, SupermarketID) ごとに最大1件。編集時の上限にだけ使い、
// 購入時の最終判断はサーバー側が行う。
type InventoryEntry struct {
	Barcode           string `json:"barcode"`
	SupermarketID     int64  `json:"supermarket_id"`
	AvailableQuantity int64  `json:"available_quantity"`
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
}
