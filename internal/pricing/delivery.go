package pricing

import (
	"strings"
	"sync"
)

const (
	DhakaDistrict      = "ঢাকা"
	defaultDhakaFee    = 60
	defaultOutsideFee  = 120
	defaultFallbackFee = 120
)

type District struct {
	Name   string   `mapstructure:"name" json:"name"`
	Fee    int64    `mapstructure:"fee" json:"fee"`
	Thanas []string `mapstructure:"thanas" json:"thanas,omitempty"`
}

// DeliveryTable: справочник районов и стоимости доставки.
// DefaultFee показывается, пока район не выбран; такой итог не отправляется.
// FreeDeliveryThreshold = 0 отключает бесплатную доставку.
type DeliveryTable struct {
	DefaultFee            int64      `mapstructure:"default_fee" json:"default_fee"`
	FreeDeliveryThreshold int64      `mapstructure:"free_delivery_threshold" json:"free_delivery_threshold"`
	Districts             []District `mapstructure:"districts" json:"districts"`

	once  sync.Once
	index map[string]int
}

func (t *DeliveryTable) buildIndex() {
	t.index = make(map[string]int, len(t.Districts))
	for i, d := range t.Districts {
		t.index[strings.TrimSpace(d.Name)] = i
	}
}

func (t *DeliveryTable) district(name string) (District, bool) {
	t.once.Do(t.buildIndex)
	i, ok := t.index[strings.TrimSpace(name)]
	if !ok {
		return District{}, false
	}
	return t.Districts[i], true
}

func (t *DeliveryTable) HasDistrict(name string) bool {
	_, ok := t.district(name)
	return ok
}

// Fee возвращает стоимость доставки и признак того, что район известен.
func (t *DeliveryTable) Fee(district string) (int64, bool) {
	d, ok := t.district(district)
	if !ok {
		return t.DefaultFee, false
	}
	return d.Fee, true
}

// ValidThana: пустой список тан у района означает отсутствие ограничений.
func (t *DeliveryTable) ValidThana(district, thana string) bool {
	d, ok := t.district(district)
	if !ok {
		return false
	}
	if len(d.Thanas) == 0 {
		return true
	}
	thana = strings.TrimSpace(thana)
	for _, th := range d.Thanas {
		if th == thana {
			return true
		}
	}
	return false
}

func DefaultDeliveryTable() *DeliveryTable {
	t := &DeliveryTable{
		DefaultFee: defaultFallbackFee,
		Districts: []District{
			{Name: DhakaDistrict, Fee: defaultDhakaFee, Thanas: []string{
				"ধানমন্ডি", "গুলশান", "বনানী", "মিরপুর", "মোহাম্মদপুর", "উত্তরা",
				"তেজগাঁও", "রমনা", "লালবাগ", "কোতোয়ালী", "বাড্ডা", "খিলগাঁও",
				"যাত্রাবাড়ী", "পল্লবী", "শাহবাগ", "মতিঝিল",
			}},
			{Name: "গাজীপুর", Fee: defaultOutsideFee},
			{Name: "নারায়ণগঞ্জ", Fee: defaultOutsideFee},
			{Name: "চট্টগ্রাম", Fee: defaultOutsideFee},
			{Name: "কুমিল্লা", Fee: defaultOutsideFee},
			{Name: "সিলেট", Fee: defaultOutsideFee},
			{Name: "রাজশাহী", Fee: defaultOutsideFee},
			{Name: "খুলনা", Fee: defaultOutsideFee},
			{Name: "বরিশাল", Fee: defaultOutsideFee},
			{Name: "রংপুর", Fee: defaultOutsideFee},
			{Name: "ময়মনসিংহ", Fee: defaultOutsideFee},
		},
	}
	return t
}
