package mapview

import (
	"strings"

	"pawmap/shared/go/models"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Resolve looks a place name up in the static gazetteer and returns its map
// coordinates. Matching is case-insensitive and also accepts US postal codes
// and common country codes. A miss is a normal outcome, not an error: the
// caller simply renders nothing for that location.
func Resolve(name string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Coordinates{}, false
	}
	if c, ok := usStates[key]; ok {
		return c, true
	}
	if full, ok := usStateCodes[key]; ok {
		return usStates[full], true
	}
	if c, ok := countries[key]; ok {
		return c, true
	}
	if full, ok := countryCodes[key]; ok {
		return countries[full], true
	}
	return Coordinates{}, false
}

// ResolveTravelLocation resolves a travel location using its kind to pick the
// lookup table, so short codes like "CA" or "IN" land on the intended entity
// (California the state vs Canada or India the country). Unknown kinds fall
// back to the generic lookup.
func ResolveTravelLocation(tl *models.TravelLocation) (Coordinates, bool) {
	switch tl.Kind {
	case models.TravelKindState:
		if c, ok := lookupState(tl.Name); ok {
			return c, true
		}
		return lookupState(tl.Code)
	case models.TravelKindCountry:
		if c, ok := lookupCountry(tl.Name); ok {
			return c, true
		}
		return lookupCountry(tl.Code)
	default:
		if c, ok := Resolve(tl.Name); ok {
			return c, true
		}
		return Resolve(tl.Code)
	}
}

func lookupState(name string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := usStates[key]; ok {
		return c, true
	}
	if full, ok := usStateCodes[key]; ok {
		return usStates[full], true
	}
	return Coordinates{}, false
}

func lookupCountry(name string) (Coordinates, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := countries[key]; ok {
		return c, true
	}
	if full, ok := countryCodes[key]; ok {
		return countries[full], true
	}
	return Coordinates{}, false
}

// Approximate state centroids, keyed by lowercase name.
var usStates = map[string]Coordinates{
	"alabama":        {32.8, -86.8},
	"alaska":         {64.0, -152.0},
	"arizona":        {34.3, -111.7},
	"arkansas":       {34.9, -92.4},
	"california":     {37.2, -119.3},
	"colorado":       {39.0, -105.5},
	"connecticut":    {41.6, -72.7},
	"delaware":       {39.0, -75.5},
	"florida":        {28.6, -82.4},
	"georgia":        {32.6, -83.4},
	"hawaii":         {20.3, -156.4},
	"idaho":          {44.4, -114.6},
	"illinois":       {40.0, -89.2},
	"indiana":        {39.9, -86.3},
	"iowa":           {42.1, -93.5},
	"kansas":         {38.5, -98.4},
	"kentucky":       {37.5, -85.3},
	"louisiana":      {31.1, -91.9},
	"maine":          {45.4, -69.2},
	"maryland":       {39.0, -76.8},
	"massachusetts":  {42.3, -71.8},
	"michigan":       {44.3, -85.4},
	"minnesota":      {46.3, -94.3},
	"mississippi":    {32.7, -89.7},
	"missouri":       {38.4, -92.5},
	"montana":        {47.0, -109.6},
	"nebraska":       {41.5, -99.8},
	"nevada":         {39.3, -116.6},
	"new hampshire":  {43.7, -71.6},
	"new jersey":     {40.2, -74.7},
	"new mexico":     {34.4, -106.1},
	"new york":       {42.9, -75.5},
	"north carolina": {35.5, -79.4},
	"north dakota":   {47.4, -100.5},
	"ohio":           {40.3, -82.8},
	"oklahoma":       {35.6, -97.5},
	"oregon":         {43.9, -120.6},
	"pennsylvania":   {40.9, -77.8},
	"rhode island":   {41.7, -71.6},
	"south carolina": {33.9, -80.9},
	"south dakota":   {44.4, -100.2},
	"tennessee":      {35.8, -86.3},
	"texas":          {31.5, -99.3},
	"utah":           {39.3, -111.7},
	"vermont":        {44.1, -72.7},
	"virginia":       {37.5, -78.9},
	"washington":     {47.4, -120.5},
	"west virginia":  {38.6, -80.6},
	"wisconsin":      {44.6, -89.7},
	"wyoming":        {43.0, -107.6},
	"district of columbia": {38.9, -77.0},
}

var usStateCodes = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
	"wi": "wisconsin", "wy": "wyoming", "dc": "district of columbia",
}

// Country centroids for the countries the travel feature sees in practice.
// Coverage is deliberately incomplete; missing names just render nothing.
var countries = map[string]Coordinates{
	"united states":  {39.8, -98.6},
	"canada":         {56.1, -106.3},
	"mexico":         {23.6, -102.6},
	"brazil":         {-14.2, -51.9},
	"argentina":      {-38.4, -63.6},
	"chile":          {-35.7, -71.5},
	"peru":           {-9.2, -75.0},
	"colombia":       {4.6, -74.3},
	"united kingdom": {54.8, -2.9},
	"ireland":        {53.4, -8.2},
	"france":         {46.6, 2.2},
	"spain":          {40.5, -3.7},
	"portugal":       {39.6, -8.0},
	"italy":          {42.8, 12.8},
	"germany":        {51.2, 10.4},
	"netherlands":    {52.1, 5.3},
	"belgium":        {50.6, 4.7},
	"switzerland":    {46.8, 8.2},
	"austria":        {47.6, 14.1},
	"greece":         {39.1, 22.9},
	"norway":         {64.6, 12.7},
	"sweden":         {62.8, 16.7},
	"denmark":        {56.0, 9.6},
	"finland":        {64.5, 26.3},
	"iceland":        {64.9, -18.6},
	"poland":         {52.1, 19.4},
	"czech republic": {49.8, 15.3},
	"hungary":        {47.2, 19.4},
	"croatia":        {45.0, 16.4},
	"turkey":         {39.0, 35.4},
	"morocco":        {31.8, -7.1},
	"egypt":          {26.7, 29.9},
	"south africa":   {-29.0, 25.1},
	"kenya":          {0.5, 37.9},
	"india":          {22.9, 79.6},
	"china":          {36.6, 103.9},
	"japan":          {36.6, 138.0},
	"south korea":    {36.4, 127.9},
	"thailand":       {15.1, 101.0},
	"vietnam":        {16.6, 106.3},
	"singapore":      {1.35, 103.8},
	"philippines":    {12.9, 121.8},
	"indonesia":      {-2.2, 117.4},
	"australia":      {-25.7, 134.5},
	"new zealand":    {-41.8, 172.8},
	"costa rica":     {9.9, -84.2},
	"panama":         {8.4, -80.1},
	"cuba":           {21.5, -79.6},
	"jamaica":        {18.1, -77.3},
	"bahamas":        {24.7, -78.0},
}

var countryCodes = map[string]string{
	"us": "united states", "usa": "united states",
	"ca": "canada", "mx": "mexico", "br": "brazil", "ar": "argentina",
	"cl": "chile", "pe": "peru", "co": "colombia",
	"uk": "united kingdom", "gb": "united kingdom", "ie": "ireland",
	"fr": "france", "es": "spain", "pt": "portugal", "it": "italy",
	"de": "germany", "nl": "netherlands", "be": "belgium", "ch": "switzerland",
	"at": "austria", "gr": "greece", "no": "norway", "se": "sweden",
	"dk": "denmark", "fi": "finland", "is": "iceland", "pl": "poland",
	"cz": "czech republic", "hu": "hungary", "hr": "croatia", "tr": "turkey",
	"ma": "morocco", "eg": "egypt", "za": "south africa", "ke": "kenya",
	"in": "india", "cn": "china", "jp": "japan", "kr": "south korea",
	"th": "thailand", "vn": "vietnam", "sg": "singapore", "ph": "philippines",
	"id": "indonesia", "au": "australia", "nz": "new zealand",
	"cr": "costa rica", "pa": "panama", "cu": "cuba", "jm": "jamaica",
	"bs": "bahamas",
}
