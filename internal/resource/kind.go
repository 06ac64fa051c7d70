package resource

import (
	"github.com/fekuna/omnipos-backoffice/internal/listquery"
)

// Kind describes one backend collection managed by the back office.
type Kind struct {
	// Name is the route segment in the back-office API, e.g. "frame-shapes".
	Name string
	// Path is the backend collection path. Defaults to Name.
	Path string
	// Label is used in toast messages.
	Label        string
	DefaultSort  string
	DefaultOrder string
	DefaultLimit int
	Filters      []listquery.FilterSpec
	// Trash marks kinds with soft delete, restore and force delete.
	Trash bool
	// CreateRules and UpdateRules are validator rules keyed by JSON field.
	CreateRules map[string]any
	UpdateRules map[string]any
}

func (k Kind) BackendPath() string {
	if k.Path != "" {
		return k.Path
	}
	return k.Name
}

// NewQuery is the first-page query for this kind.
func (k Kind) NewQuery(trash bool) listquery.Query {
	q := listquery.New(k.DefaultLimit, k.DefaultSort, k.DefaultOrder)
	q.Trash = trash
	return q
}

var isActive = listquery.FilterSpec{Param: "isActive"}

var (
	Products = Kind{
		Name: "products", Label: "Product",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{
			{Param: "productStatus"},
			{Param: "productType"},
			{Param: "gender"},
			{Param: "brandId"},
			{Param: "stockStatus"},
		},
		Trash: true,
		CreateRules: map[string]any{
			"name":      "required,min=1,max=255",
			"sku":       "required,max=64",
			"basePrice": "gte=0",
		},
		UpdateRules: map[string]any{
			"name":      "omitempty,min=1,max=255",
			"basePrice": "omitempty,gte=0",
		},
	}
	Colors = Kind{
		Name: "colors", Label: "Color",
		DefaultSort: "name", DefaultOrder: listquery.OrderAsc,
		Filters:     []listquery.FilterSpec{isActive},
		Trash:       true,
		CreateRules: map[string]any{"name": "required,max=100", "hexCode": "required,hexcolor"},
		UpdateRules: map[string]any{"name": "omitempty,max=100", "hexCode": "omitempty,hexcolor"},
	}
	Tags = Kind{
		Name: "tags", Label: "Tag",
		DefaultSort: "name", DefaultOrder: listquery.OrderAsc,
		Filters:     []listquery.FilterSpec{isActive},
		Trash:       true,
		CreateRules: map[string]any{"name": "required,max=100"},
		UpdateRules: map[string]any{"name": "omitempty,max=100"},
	}
	FrameShapes = Kind{
		Name: "frame-shapes", Label: "Frame shape",
		DefaultSort: "name", DefaultOrder: listquery.OrderAsc,
		Filters:     []listquery.FilterSpec{isActive},
		Trash:       true,
		CreateRules: map[string]any{"name": "required,max=100"},
		UpdateRules: map[string]any{"name": "omitempty,max=100"},
	}
	FrameMaterials = Kind{
		Name: "frame-materials", Label: "Frame material",
		DefaultSort: "name", DefaultOrder: listquery.OrderAsc,
		Filters:     []listquery.FilterSpec{isActive},
		Trash:       true,
		CreateRules: map[string]any{"name": "required,max=100"},
		UpdateRules: map[string]any{"name": "omitempty,max=100"},
	}
	Banners = Kind{
		Name: "banners", Label: "Banner",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters:     []listquery.FilterSpec{isActive},
		Trash:       true,
		CreateRules: map[string]any{"title": "required,max=255", "imageUrl": "required,url"},
		UpdateRules: map[string]any{"title": "omitempty,max=255", "imageUrl": "omitempty,url"},
	}
	Discounts = Kind{
		Name: "discounts", Label: "Discount",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters:     []listquery.FilterSpec{isActive},
		Trash:       true,
		CreateRules: map[string]any{"name": "required,max=255", "percentage": "gte=0,lte=100"},
		UpdateRules: map[string]any{"name": "omitempty,max=255", "percentage": "omitempty,gte=0,lte=100"},
	}
	Vouchers = Kind{
		Name: "vouchers", Label: "Voucher",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{
			{Param: "voucherStatus"},
			{Param: "voucherType"},
		},
		Trash: true,
		CreateRules: map[string]any{
			"code":        "required,alphanum,max=32",
			"voucherType": "required",
			"value":       "required,gt=0",
		},
		UpdateRules: map[string]any{"code": "omitempty,alphanum,max=32", "value": "omitempty,gt=0"},
	}
	Orders = Kind{
		Name: "orders", Label: "Order",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{{Param: "orderStatus"}},
	}
	Refunds = Kind{
		Name: "refunds", Label: "Refund",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{{Param: "refundStatus"}},
	}
	Returns = Kind{
		Name: "returns", Label: "Return",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{{Param: "returnStatus"}},
	}
	Reviews = Kind{
		Name: "reviews", Label: "Review",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{isActive, {Param: "productId"}},
		Trash:   true,
	}
	Users = Kind{
		Name: "users", Label: "User",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{
			{Param: "userRole", Multi: true},
			{Param: "userStatus", Multi: true},
		},
		Trash: true,
	}
	Images = Kind{
		Name: "images", Label: "Image",
		DefaultSort: "createdAt", DefaultOrder: listquery.OrderDesc,
		Filters: []listquery.FilterSpec{
			{Param: "imageStatus"},
			{Param: "ownerType"},
			{Param: "ownerId"},
		},
		Trash:       true,
		CreateRules: map[string]any{"url": "required,url"},
		UpdateRules: map[string]any{"url": "omitempty,url"},
	}
)

// All lists every registered kind in menu order.
func All() []Kind {
	return []Kind{
		Products, Colors, Tags, FrameShapes, FrameMaterials, Banners,
		Discounts, Vouchers, Orders, Refunds, Returns, Reviews, Users, Images,
	}
}

// Lookup finds a kind by its route name.
func Lookup(name string) (Kind, bool) {
	for _, k := range All() {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
