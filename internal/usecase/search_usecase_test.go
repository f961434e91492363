package usecase_test

import (
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func searchFixtures() []model.Supermarket {
	return []model.Supermarket{
		{ID: 1, Name: "Coop Milano", Address: "Via Torino 1, Milano", Latitude: 45.46, Longitude: 9.19},
		{ID: 2, Name: "Esselunga", Address: "Corso Buenos Aires 10, Milano", Latitude: 45.48, Longitude: 9.21},
		{ID: 3, Name: "Carrefour Express", Address: "Via Roma 5, Torino", Latitude: 45.07, Longitude: 7.69},
		{ID: 4, Name: "Coop Centro", Address: "Piazza Duomo 2, Firenze", Latitude: 43.77, Longitude: 11.25},
	}
}

// 部分一致があればそれを使う
func TestRankSupermarkets_SubstringMatch(t *testing.T) {
	out := usecase.RankSupermarkets("coop", searchFixtures(), nil, 8)

	assert.Len(t, out, 2)
	//名前に含まれる2件、同順位は名前順
	assert.Equal(t, "Coop Centro", out[0].Name)
	assert.Equal(t, "Coop Milano", out[1].Name)
}

// 住所への部分一致も対象。名前一致が先頭に来る
func TestRankSupermarkets_NameMatchesBeforeAddressMatches(t *testing.T) {
	out := usecase.RankSupermarkets("milano", searchFixtures(), nil, 8)

	//名前一致1件＋住所一致1件
	assert.Len(t, out, 2)
	assert.Equal(t, "Coop Milano", out[0].Name)
	assert.Equal(t, "Esselunga", out[1].Name)
}

// 部分一致が無ければ編集距離で探す
func TestRankSupermarkets_FuzzyFallback(t *testing.T) {
	out := usecase.RankSupermarkets("eselunga", searchFixtures(), nil, 8)

	assert.Len(t, out, 1)
	assert.Equal(t, "Esselunga", out[0].Name)
}

// 3文字未満のクエリはあいまい一致しない
func TestRankSupermarkets_ShortQueryNoFuzzy(t *testing.T) {
	out := usecase.RankSupermarkets("xy", searchFixtures(), nil, 8)

	assert.Empty(t, out)
}

// 現在地があれば同順位を距離で並べる
func TestRankSupermarkets_DistanceTieBreak(t *testing.T) {
	nearFlorence := &model.LatLng{Lat: 43.78, Lng: 11.25}

	out := usecase.RankSupermarkets("coop", searchFixtures(), nearFlorence, 8)

	assert.Len(t, out, 2)
	assert.Equal(t, "Coop Centro", out[0].Name)

	nearMilan := &model.LatLng{Lat: 45.46, Lng: 9.19}
	out = usecase.RankSupermarkets("coop", searchFixtures(), nearMilan, 8)
	assert.Equal(t, "Coop Milano", out[0].Name)
}

func TestRankSupermarkets_Truncates(t *testing.T) {
	out := usecase.RankSupermarkets("milano", searchFixtures(), nil, 1)

	assert.Len(t, out, 1)
}

func TestRankSupermarkets_EmptyQuery(t *testing.T) {
	out := usecase.RankSupermarkets("   ", searchFixtures(), nil, 8)

	assert.Empty(t, out)
}

func TestRankProducts_SubstringThenFuzzy(t *testing.T) {
	products := []model.Product{
		{ID: 1, Barcode: "1", Name: "Latte intero", Description: "latte fresco"},
		{ID: 2, Barcode: "2", Name: "Pane bianco", Description: "pane fresco"},
		{ID: 3, Barcode: "3", Name: "Lattuga", Description: "insalata"},
	}

	out := usecase.RankProducts("latte", products, 8)
	assert.Len(t, out, 1)
	assert.Equal(t, "Latte intero", out[0].Name)

	//部分一致なし→名前へのあいまい一致
	out = usecase.RankProducts("latuga", products, 8)
	assert.Len(t, out, 1)
	assert.Equal(t, "Lattuga", out[0].Name)
}
