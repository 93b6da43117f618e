package api

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

type wireCoffee struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImgURL      string  `json:"img_url"`
}

type wireItem struct {
	ID       int64   `json:"id"`
	CartID   int     `json:"cartId"`
	CoffeeID int64   `json:"coffeeId"`
	Name     string  `json:"coffee_name"`
	Desc     string  `json:"coffee_desc"`
	Price    float64 `json:"coffee_price"`
	Quantity int     `json:"quantity"`
	ImgURL   string  `json:"img_url"`
}

type uploadedForm struct {
	name      string
	price     string
	imageFile string
}

// fakeCoffeeBackend is an in-memory coffee backend speaking the wire format
type fakeCoffeeBackend struct {
	mu      sync.Mutex
	cartID  int
	coffees []wireCoffee
	items   []wireItem
	nextID  int64

	failUpdate bool
	failClear  bool
	updates    int
	added      []map[string]interface{}
	created    []uploadedForm
	updated    []uploadedForm
}

func newFakeCoffeeBackend() *fakeCoffeeBackend {
	return &fakeCoffeeBackend{
		cartID: 7,
		coffees: []wireCoffee{
			{ID: 10, Name: "Latte", Price: 2.99, ImgURL: "/latte.jpg"},
			{ID: 11, Name: "Mocha", Price: 3.19},
			{ID: 12, Name: "Decaf", Price: 1.50},
		},
		items: []wireItem{
			{ID: 1, CartID: 7, CoffeeID: 11, Name: "Mocha", Price: 3.19, Quantity: 1},
			{ID: 2, CartID: 7, CoffeeID: 10, Name: "Latte", Price: 2.99, Quantity: 2, ImgURL: "/latte.jpg"},
		},
		nextID: 3,
	}
}

func (f *fakeCoffeeBackend) router() http.Handler {
	r := gin.New()

	r.GET("/coffees", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		c.JSON(http.StatusOK, f.coffees)
	})

	r.POST("/ins-coffee", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.created = append(f.created, readForm(c, "img_file"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.PUT("/update-coffee/:id", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.updated = append(f.updated, readForm(c, "file"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	dropCoffee := func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		for _, item := range f.items {
			if item.CoffeeID == id {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "foreign key violation"})
				return
			}
		}
		kept := f.coffees[:0]
		for _, coffee := range f.coffees {
			if coffee.ID != id {
				kept = append(kept, coffee)
			}
		}
		f.coffees = kept
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
	r.DELETE("/delete-coffee/:id", dropCoffee)
	r.DELETE("/remove-coffee/:id", dropCoffee)

	r.GET("/get-cartID", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cartId": f.cartID})
	})

	r.GET("/get-cart", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		c.JSON(http.StatusOK, []gin.H{{"id": f.cartID, "cartItems": f.items}})
	})

	r.POST("/add-to-cart", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.added = append(f.added, body)
		coffeeID, _ := body["coffeeId"].(float64)
		quantity, _ := body["quantity"].(float64)
		price, _ := body["coffee_price"].(float64)
		name, _ := body["coffee_name"].(string)
		f.items = append(f.items, wireItem{
			ID: f.nextID, CartID: f.cartID, CoffeeID: int64(coffeeID),
			Name: name, Price: price, Quantity: int(quantity),
		})
		f.nextID++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.PUT("/update-cart-item", func(c *gin.Context) {
		var body struct {
			CartItemID int64 `json:"cartItemId"`
			Quantity   int   `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.updates++
		if f.failUpdate {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		for i := range f.items {
			if f.items[i].ID == body.CartItemID {
				f.items[i].Quantity = body.Quantity
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.DELETE("/delete-cart-item/:id/:cartId", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		if c.Param("cartId") != strconv.Itoa(f.cartID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such cart"})
			return
		}
		kept := f.items[:0]
		for _, item := range f.items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		f.items = kept
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.DELETE("/clear-cart", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failClear {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
			return
		}
		f.items = nil
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func (f *fakeCoffeeBackend) quantity(itemID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.ID == itemID {
			return item.Quantity
		}
	}
	return 0
}

func readForm(c *gin.Context, imageField string) uploadedForm {
	form := uploadedForm{name: c.PostForm("name"), price: c.PostForm("price")}
	if fh, err := c.FormFile(imageField); err == nil {
		form.imageFile = fh.Filename
	}
	return form
}
