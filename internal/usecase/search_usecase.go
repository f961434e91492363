package usecase

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

const (
	//最終的に返す件数の上限
	defaultMaxResults = 8
	//あいまい一致ブランチで残す件数
	fuzzyKeepCount = 5
	//これより短いクエリはあいまい一致しない
	fuzzyMinQueryLen = 3
)

// 店舗・商品検索。状態は持たない（カタログはその場で取りに行く）。
type SearchUsecase struct {
	catalog repo.CatalogClient
}

// DI
func NewSearchUsecase(catalog repo.CatalogClient) *SearchUsecase {
	return &SearchUsecase{catalog: catalog}
}

// カタログから店舗一覧を取り、クエリでランキングして返す。
func (u *SearchUsecase) SearchSupermarkets(ctx context.Context, token string, query string, userPos *model.LatLng) ([]model.Supermarket, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	supermarkets, err := u.catalog.ListSupermarkets(ctx, token)
	if err != nil {
		return nil, NewHTTPError(http.StatusBadGateway, "catalog unavailable")
	}

	return RankSupermarkets(query, supermarkets, userPos, defaultMaxResults), nil
}

// 店舗をクエリでランキングする。純粋関数。
//  1. 名前か住所にクエリが含まれるもの（大文字小文字無視）があればその集合。
//  2. 無ければ、3文字以上のクエリに限り編集距離で候補を選ぶ
//     （min(名前距離, 住所距離) がクエリ長の40%以内、距離昇順で上位5件）。
//  3. 選んだ集合は「名前にクエリを含むもの」を先頭に、
//     同順位は userPos があれば近い順、無ければ名前順。
//  4. maxResults 件に切り詰める。
func RankSupermarkets(query string, supermarkets []model.Supermarket, userPos *model.LatLng, maxResults int) []model.Supermarket {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Supermarket{}
	}

	chosen := substringMatches(q, supermarkets)
	if len(chosen) == 0 && len([]rune(q)) >= fuzzyMinQueryLen {
		chosen = fuzzyMatches(q, supermarkets)
	}

	sort.SliceStable(chosen, func(i, j int) bool {
		iName := strings.Contains(strings.ToLower(chosen[i].Name), q)
		jName := strings.Contains(strings.ToLower(chosen[j].Name), q)
		if iName != jName {
			return iName
		}
		if userPos != nil {
			di := Haversine(*userPos, model.LatLng{Lat: chosen[i].Latitude, Lng: chosen[i].Longitude})
			dj := Haversine(*userPos, model.LatLng{Lat: chosen[j].Latitude, Lng: chosen[j].Longitude})
			return di < dj
		}
		return chosen[i].Name < chosen[j].Name
	})

	if len(chosen) > maxResults {
		chosen = chosen[:maxResults]
	}
	return chosen
}

// 名前または住所への部分一致。
func substringMatches(q string, supermarkets []model.Supermarket) []model.Supermarket {
	out := []model.Supermarket{}
	for _, s := range supermarkets {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Address), q) {
			out = append(out, s)
		}
	}
	return out
}

type fuzzyCandidate struct {
	supermarket model.Supermarket
	distance    int
}

// 編集距離によるあいまい一致。距離昇順で上位 fuzzyKeepCount 件。
func fuzzyMatches(q string, supermarkets []model.Supermarket) []model.Supermarket {
	threshold := similarityThreshold(q)

	candidates := []fuzzyCandidate{}
	for _, s := range supermarkets {
		nameDist := EditDistance(q, strings.ToLower(s.Name))
		addrDist := EditDistance(q, strings.ToLower(s.Address))
		dist := minInt(nameDist, addrDist)
		if dist <= threshold {
			candidates = append(candidates, fuzzyCandidate{supermarket: s, distance: dist})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if len(candidates) > fuzzyKeepCount {
		candidates = candidates[:fuzzyKeepCount]
	}

	out := make([]model.Supermarket, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.supermarket)
	}
	return out
}

// 商品リストをクエリで絞り込む。名前・説明への部分一致を優先し、
// 無ければ名前へのあいまい一致。
func RankProducts(query string, products []model.Product, maxResults int) []model.Product {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Product{}
	}

	chosen := []model.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			chosen = append(chosen, p)
		}
	}

	if len(chosen) == 0 && len([]rune(q)) >= fuzzyMinQueryLen {
		for _, p := range products {
			if IsSimilar(q, p.Name) {
				chosen = append(chosen, p)
			}
		}
	}

	sort.SliceStable(chosen, func(i, j int) bool {
		iName := strings.Contains(strings.ToLower(chosen[i].Name), q)
		jName := strings.Contains(strings.ToLower(chosen[j].Name), q)
		if iName != jName {
			return iName
		}
		return chosen[i].Name < chosen[j].Name
	})

	if len(chosen) > maxResults {
		chosen = chosen[:maxResults]
	}
	return chosen
}
