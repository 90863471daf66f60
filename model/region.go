package model

type Region struct {
	Name  string
	Host  string
	Route string
}

var (
	R_BR1  = Region{Name: "br1", Host: "br1.api.riotgames.com", Route: "americas"}
	R_EUN1 = Region{Name: "eun1", Host: "eun1.api.riotgames.com", Route: "europe"}
	R_EUW1 = Region{Name: "euw1", Host: "euw1.api.riotgames.com", Route: "europe"}
	R_JP1  = Region{Name: "jp1", Host: "jp1.api.riotgames.com", Route: "asia"}
	R_KR   = Region{Name: "kr", Host: "kr.api.riotgames.com", Route: "asia"}
	R_LA1  = Region{Name: "la1", Host: "la1.api.riotgames.com", Route: "americas"}
	R_LA2  = Region{Name: "la2", Host: "la2.api.riotgames.com", Route: "americas"}
	R_NA1  = Region{Name: "na1", Host: "na1.api.riotgames.com", Route: "americas"}
	R_OC1  = Region{Name: "oc1", Host: "oc1.api.riotgames.com", Route: "americas"}
	R_TR1  = Region{Name: "tr1", Host: "tr1.api.riotgames.com", Route: "europe"}
	R_RU   = Region{Name: "ru", Host: "ru.api.riotgames.com", Route: "europe"}
)

func RegionFromString(s string) Region {
	switch s {
	case "br1":
		return R_BR1
	case "eun1":
		return R_EUN1
	case "euw1":
		return R_EUW1
	case "jp1":
		return R_JP1
	case "kr":
		return R_KR
	case "la1":
		return R_LA1
	case "la2":
		return R_LA2
	case "na1":
		return R_NA1
	case "oc1":
		return R_OC1
	case "tr1":
		return R_TR1
	case "ru":
		return R_RU
	}
	// 未知のリージョンはそのままホスト名に変換して通す
	return Region{Name: s, Host: s + ".api.riotgames.com", Route: "americas"}
}

func (r Region) RouteHost() string {
	return r.Route + ".api.riotgames.com"
}

func (r Region) String() string {
	return r.Name
}
