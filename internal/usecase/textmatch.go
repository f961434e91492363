package usecase

import (
	"math"
	"strings"

	"app/internal/domain/model"
)

// あいまい一致で許す編集距離の割合（クエリ長に対して）。
const similarityTolerance = 0.4

// 挿入・削除・置換をコスト1とする編集距離。O(|a|*|b|)。
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// 小文字化した上で、クエリ長の40%以内の編集距離なら似ているとみなす。
func IsSimilar(query, target string) bool {
	q := strings.ToLower(query)
	t := strings.ToLower(target)
	return EditDistance(q, t) <= similarityThreshold(q)
}

func similarityThreshold(query string) int {
	return int(math.Ceil(float64(len([]rune(query))) * similarityTolerance))
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

const earthRadiusKm = 6371.0

// 2点間の大円距離（km）。検索結果の距離ソートに使う。
func Haversine(a, b model.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
