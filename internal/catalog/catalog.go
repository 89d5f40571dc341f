// Package catalog содержит статические справочные данные экономики:
// магазин, чёрный рынок, приложения, работы и VIP-планы.
// Каталог инициализируется один раз при старте процесса и неизменяем,
// за единственным исключением — привязанная внешняя роль VIP-плана,
// которую настраивает администратор во время работы.
package catalog

import (
	"sync"
	"time"
)

// Известные id предметов, на которые ссылаются правила.
const (
	ItemPhone       = "phone"        // открывает телефон и приложения
	ItemGamingPC    = "gaming_pc"    // +20% к зарплате
	ItemSupremeRing = "supreme_ring" // секретный предмет, способности Кольца

	MarketPlasmaGun    = "plasma_gun"    // +30% к шансу преступления
	MarketFakePassport = "fake_passport" // уменьшенный штраф при провале

	AppDigitalBank = "digital_bank"
)

// Item — предмет магазина.
type Item struct {
	ID          string
	Price       int64
	Description string
	Secret      bool    // не продаётся и не показывается игрокам
	WorkBonus   float64 // добавка к множителю зарплаты (0.2 = +20%)
}

// MarketItem — предмет чёрного рынка.
type MarketItem struct {
	ID          string
	Price       int64
	Description string
	CrimeBonus  float64 // добавка к шансу успеха преступления
	ReducedFine bool    // уменьшенный штраф при провале преступления
}

// App — приложение для телефона.
type App struct {
	ID      string
	Price   int64
	Benefit string
}

// Job — работа с зарплатой, перезарядкой и требованием уровня.
type Job struct {
	ID       string
	Salary   int64
	Cooldown time.Duration
	MinLevel int
}

// VIPTier — VIP-план. Привязанная внешняя роль настраивается отдельно
// (см. Catalog.SetLinkedRole) — это единственное мутабельное поле каталога.
type VIPTier struct {
	ID        string
	Name      string
	Price     int64
	GameMoney int64 // сумма, выдаваемая на игровом сервере (вне движка)
	Benefits  []string
}

// Таблицы повторяют справочник исходной экономики.
var (
	shopItems = []*Item{
		{ID: ItemPhone, Price: 2000, Description: "Открывает приложения и функции"},
		{ID: ItemGamingPC, Price: 5000, Description: "Увеличивает заработок на 20%", WorkBonus: 0.2},
		{ID: "car", Price: 15000, Description: "Сокращает время работы"},
		{ID: "mansion", Price: 50000, Description: "Максимальный статус роскоши"},
		{ID: "yacht", Price: 100000, Description: "Мечта любого миллионера"},
		{ID: ItemSupremeRing, Price: 999999999, Description: "СЕКРЕТНЫЙ ПРЕДМЕТ — абсолютная власть", Secret: true},
	}

	marketItems = []*MarketItem{
		{ID: MarketPlasmaGun, Price: 25000, Description: "Повышает шанс преступлений на 30%", CrimeBonus: 0.30},
		{ID: "blood_diamond", Price: 50000, Description: "Дорого ценится на чёрном рынке"},
		{ID: MarketFakePassport, Price: 15000, Description: "Помогает избежать тюрьмы", ReducedFine: true},
		{ID: "hacker_chip", Price: 30000, Description: "Взламывайте системы успешно"},
	}

	apps = []*App{
		{ID: AppDigitalBank, Price: 500, Benefit: "Мгновенные переводы"},
		{ID: "stock_market", Price: 2000, Benefit: "Инвестируйте и умножайте деньги"},
		{ID: "delivery", Price: 800, Benefit: "Зарабатывайте на доставках"},
		{ID: "taxi", Price: 1000, Benefit: "Работайте водителем"},
	}

	jobs = []*Job{
		{ID: "courier", Salary: 500, Cooldown: 1 * time.Hour, MinLevel: 1},
		{ID: "cashier", Salary: 750, Cooldown: 1 * time.Hour, MinLevel: 2},
		{ID: "programmer", Salary: 1500, Cooldown: 2 * time.Hour, MinLevel: 5},
		{ID: "doctor", Salary: 3000, Cooldown: 3 * time.Hour, MinLevel: 10},
		{ID: "businessman", Salary: 5000, Cooldown: 4 * time.Hour, MinLevel: 15},
	}

	vipTiers = []*VIPTier{
		{ID: "alpha", Name: "VIP Alpha", Price: 3000, GameMoney: 100000, Benefits: []string{
			"Доступ в VIP-зону", "Приоритетная очередь в тикетах", "R$100.000 в игре",
		}},
		{ID: "beta", Name: "VIP Beta", Price: 10000, GameMoney: 250000, Benefits: []string{
			"Всё из Alpha", "R$250.000 в игре", "Отдельная роль в сообществе",
		}},
		{ID: "omega", Name: "VIP Omega", Price: 18000, GameMoney: 300000, Benefits: []string{
			"Всё из Beta", "R$300.000 в игре", "VIP-зарплата",
		}},
		{ID: "diamond", Name: "VIP Diamond", Price: 30000, GameMoney: 750000, Benefits: []string{
			"Всё из Omega", "R$750.000 в игре", "VIP-магазин в игре", "Тег VIP DIAMOND", "1 эксклюзивный транспорт",
		}},
		{ID: "diamond2", Name: "VIP Diamond 2.0", Price: 50000, GameMoney: 1000000, Benefits: []string{
			"Всё из Diamond", "2 уникальных транспорта", "R$1.000.000 в игре", "Ранний доступ к обновлениям", "Особые цвета в чате",
		}},
	}
)

// Catalog — справочник с индексами по id.
type Catalog struct {
	items  map[string]*Item
	market map[string]*MarketItem
	apps   map[string]*App
	jobs   map[string]*Job
	vips   map[string]*VIPTier

	rolesMu     sync.RWMutex
	linkedRoles map[string]int64 // vip id → id внешней роли
}

// New строит каталог со стандартными таблицами.
func New() *Catalog {
	c := &Catalog{
		items:       make(map[string]*Item, len(shopItems)),
		market:      make(map[string]*MarketItem, len(marketItems)),
		apps:        make(map[string]*App, len(apps)),
		jobs:        make(map[string]*Job, len(jobs)),
		vips:        make(map[string]*VIPTier, len(vipTiers)),
		linkedRoles: make(map[string]int64),
	}
	for _, it := range shopItems {
		c.items[it.ID] = it
	}
	for _, it := range marketItems {
		c.market[it.ID] = it
	}
	for _, a := range apps {
		c.apps[a.ID] = a
	}
	for _, j := range jobs {
		c.jobs[j.ID] = j
	}
	for _, v := range vipTiers {
		c.vips[v.ID] = v
	}
	return c
}

// Item ищет предмет магазина по id.
func (c *Catalog) Item(id string) (*Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// MarketItem ищет предмет чёрного рынка по id.
func (c *Catalog) MarketItem(id string) (*MarketItem, bool) {
	it, ok := c.market[id]
	return it, ok
}

// AnyItem ищет предмет в магазине И на чёрном рынке (для инвентаря и админки).
// Второй результат — true, если предмет найден хоть где-то.
func (c *Catalog) AnyItem(id string) (price int64, ok bool) {
	if it, found := c.items[id]; found {
		return it.Price, true
	}
	if it, found := c.market[id]; found {
		return it.Price, true
	}
	return 0, false
}

// App ищет приложение по id.
func (c *Catalog) App(id string) (*App, bool) {
	a, ok := c.apps[id]
	return a, ok
}

// Job ищет работу по id.
func (c *Catalog) Job(id string) (*Job, bool) {
	j, ok := c.jobs[id]
	return j, ok
}

// VIP ищет VIP-план по id.
func (c *Catalog) VIP(id string) (*VIPTier, bool) {
	v, ok := c.vips[id]
	return v, ok
}

// Items возвращает предметы магазина в порядке объявления.
func (c *Catalog) Items() []*Item { return shopItems }

// MarketItems возвращает предметы чёрного рынка в порядке объявления.
func (c *Catalog) MarketItems() []*MarketItem { return marketItems }

// Apps возвращает приложения в порядке объявления.
func (c *Catalog) Apps() []*App { return apps }

// Jobs возвращает работы в порядке объявления.
func (c *Catalog) Jobs() []*Job { return jobs }

// VIPs возвращает VIP-планы в порядке объявления (по возрастанию цены).
func (c *Catalog) VIPs() []*VIPTier { return vipTiers }

// SetLinkedRole привязывает внешнюю роль к VIP-плану.
// Возвращает false, если план не существует.
func (c *Catalog) SetLinkedRole(vipID string, roleID int64) bool {
	if _, ok := c.vips[vipID]; !ok {
		return false
	}
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()
	c.linkedRoles[vipID] = roleID
	return true
}

// LinkedRole возвращает привязанную роль VIP-плана, если она настроена.
func (c *Catalog) LinkedRole(vipID string) (int64, bool) {
	c.rolesMu.RLock()
	defer c.rolesMu.RUnlock()
	roleID, ok := c.linkedRoles[vipID]
	return roleID, ok
}
