package kernel_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/repositories"
	"github.com/Eswaramoorthy-2004/my-ecom-store/internal/kernel"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/auth"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/storage"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/testkit"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
	"github.com/Eswaramoorthy-2004/my-ecom-store/resources"
)

type shop struct {
	db      *gorm.DB
	handler http.Handler
	root    string
}

func newShop(t *testing.T) *shop {
	t.Helper()

	db := testkit.DB(t)
	views, err := view.New(resources.Views())
	require.NoError(t, err)

	root := t.TempDir()
	disks := storage.NewManager("local")
	disks.Register("local", storage.NewLocalDisk(root, "/storage"))

	k := kernel.NewHTTPKernel(kernel.Deps{
		DB:        db,
		Sessions:  testkit.Sessions(),
		Views:     views,
		Storage:   disks,
		MaxUpload: 1 << 20,
	})
	return &shop{db: db, handler: k.Handler(), root: root}
}

func (s *shop) client(t *testing.T) *testkit.Client {
	return testkit.NewClient(t, s.handler)
}

func id(v uint) string { return fmt.Sprint(v) }

func productCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	n, err := repositories.NewProductRepository(db).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestRegisterThenLogin(t *testing.T) {
	s := newShop(t)
	c := s.client(t)

	resp := c.Get("/register")
	assert.Equal(t, http.StatusOK, resp.Status)

	resp = c.PostForm("/register", url.Values{"email": {"new@shop.io"}, "password": {"hunter22"}})
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/login", resp.Location)

	var user models.User
	require.NoError(t, s.db.Where("email = ?", "new@shop.io").First(&user).Error)
	assert.Equal(t, auth.RoleCustomer, user.Role)
	assert.NotEqual(t, "hunter22", user.Password)

	c.Login("new@shop.io", "hunter22")

	home := c.Get("/")
	assert.Equal(t, http.StatusOK, home.Status)
	assert.Contains(t, home.Body, "new@shop.io")
	assert.Contains(t, home.Body, `href="/logout"`)
	assert.NotContains(t, home.Body, `href="/admin"`)
}

func TestDuplicateRegistration(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "taken@shop.io", "pw", auth.RoleCustomer)

	resp := s.client(t).PostForm("/register", url.Values{"email": {"taken@shop.io"}, "password": {"x"}})
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Error registering user. Email might already be taken.", resp.Body)
}

func TestBadCredentialsLeaveNoSession(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "c@shop.io", "right", auth.RoleCustomer)

	for _, form := range []url.Values{
		{"email": {"c@shop.io"}, "password": {"wrong"}},
		{"email": {"nobody@shop.io"}, "password": {"right"}},
	} {
		c := s.client(t)
		resp := c.PostForm("/login", form)
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, "/login", resp.Location)
		assert.Empty(t, c.Cookies())

		resp = c.Get("/cart")
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, "/login", resp.Location)
	}
}

func TestGuards(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "c@shop.io", "pw", auth.RoleCustomer)

	guest := s.client(t)
	for _, path := range []string{"/cart", "/checkout", "/shipping-details"} {
		resp := guest.Get(path)
		assert.Equal(t, http.StatusFound, resp.Status, path)
		assert.Equal(t, "/login", resp.Location, path)
	}
	resp := guest.PostForm("/place-order", nil)
	assert.Equal(t, "/login", resp.Location)

	resp = guest.Get("/admin")
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/", resp.Location)

	customer := s.client(t)
	customer.Login("c@shop.io", "pw")
	resp = customer.Get("/admin")
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/", resp.Location)
	resp = customer.PostForm("/admin/delete-product", url.Values{"productId": {"1"}})
	assert.Equal(t, "/", resp.Location)
}

func TestCartFlow(t *testing.T) {
	s := newShop(t)
	user := testkit.CreateUser(t, s.db, "c@shop.io", "pw", auth.RoleCustomer)
	ten := testkit.CreateProduct(t, s.db, "Ten", 10)
	five := testkit.CreateProduct(t, s.db, "Five", 5)

	c := s.client(t)
	c.Login("c@shop.io", "pw")

	for i := 0; i < 2; i++ {
		resp := c.PostForm("/cart/add", url.Values{"productId": {id(ten.ID)}})
		assert.Equal(t, http.StatusFound, resp.Status)
		assert.Equal(t, "/", resp.Location)
	}
	assert.Equal(t, 2, testkit.CartQuantity(t, s.db, user.ID, ten.ID))
	assert.EqualValues(t, 1, testkit.CartRows(t, s.db, "user_id = ?", user.ID))

	c.PostForm("/cart/add", url.Values{"productId": {id(five.ID)}})

	cart := c.Get("/cart")
	assert.Equal(t, http.StatusOK, cart.Status)
	assert.Contains(t, cart.Body, `<span id="cart-total">25.00</span>`)

	resp := c.PostForm("/cart/update-quantity", url.Values{"productId": {id(ten.ID)}, "action": {"decrease"}})
	assert.Equal(t, "/cart", resp.Location)
	assert.Equal(t, 1, testkit.CartQuantity(t, s.db, user.ID, ten.ID))

	c.PostForm("/cart/update-quantity", url.Values{"productId": {id(ten.ID)}, "action": {"increase"}})
	assert.Equal(t, 2, testkit.CartQuantity(t, s.db, user.ID, ten.ID))

	resp = c.PostForm("/cart/update-quantity", url.Values{"productId": {id(ten.ID)}, "action": {"double"}})
	assert.Equal(t, "/cart", resp.Location)
	assert.Equal(t, 2, testkit.CartQuantity(t, s.db, user.ID, ten.ID))

	c.PostForm("/cart/update-quantity", url.Values{"productId": {id(five.ID)}, "action": {"decrease"}})
	assert.Equal(t, 0, testkit.CartQuantity(t, s.db, user.ID, five.ID))

	resp = c.PostForm("/cart/remove", url.Values{"productId": {id(ten.ID)}})
	assert.Equal(t, "/cart", resp.Location)
	assert.EqualValues(t, 0, testkit.CartRows(t, s.db, "user_id = ?", user.ID))
}

func TestCartRejectsBadInput(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "c@shop.io", "pw", auth.RoleCustomer)
	c := s.client(t)
	c.Login("c@shop.io", "pw")

	resp := c.PostForm("/cart/add", url.Values{"productId": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Error adding to cart.", resp.Body)

	resp = c.PostForm("/cart/add", url.Values{"productId": {"999"}})
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Error adding to cart.", resp.Body)
}

func TestCheckoutAndPlaceOrder(t *testing.T) {
	s := newShop(t)
	user := testkit.CreateUser(t, s.db, "c@shop.io", "pw", auth.RoleCustomer)
	ten := testkit.CreateProduct(t, s.db, "Ten", 10)
	five := testkit.CreateProduct(t, s.db, "Five", 5)

	c := s.client(t)
	c.Login("c@shop.io", "pw")

	resp := c.Get("/checkout")
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/cart", resp.Location)

	c.PostForm("/cart/add", url.Values{"productId": {id(ten.ID)}})
	c.PostForm("/cart/add", url.Values{"productId": {id(ten.ID)}})
	c.PostForm("/cart/add", url.Values{"productId": {id(five.ID)}})

	resp = c.Get("/checkout")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "25.00")
	assert.Contains(t, resp.Body, "1.25")
	assert.Contains(t, resp.Body, "26.25")

	resp = c.Get("/shipping-details")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, `action="/place-order"`)

	resp = c.PostForm("/place-order", url.Values{"name": {"C"}, "address": {"1 Road"}})
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "Your order has been placed.")
	assert.EqualValues(t, 0, testkit.CartRows(t, s.db, "user_id = ?", user.ID))

	resp = c.Get("/checkout")
	assert.Equal(t, "/cart", resp.Location)
}

func TestAdminProductCRUD(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "admin@shop.io", "pw", auth.RoleAdmin)
	customer := testkit.CreateUser(t, s.db, "c@shop.io", "pw", auth.RoleCustomer)

	admin := s.client(t)
	admin.Login("admin@shop.io", "pw")

	resp := admin.Get("/admin")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "No products yet.")

	resp = admin.PostForm("/admin/add-product", url.Values{
		"name": {"Mug"}, "description": {"Ceramic"}, "price": {"12.5"}, "imageUrl": {"/img/mug.png"},
	})
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/admin", resp.Location)

	var mug models.Product
	require.NoError(t, s.db.Where("name = ?", "Mug").First(&mug).Error)
	assert.Equal(t, 12.5, mug.Price)
	assert.Equal(t, "/img/mug.png", mug.ImageURL)

	resp = admin.PostForm("/admin/add-product", url.Values{"name": {"Bad"}, "price": {"twelve"}})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Error adding product.", resp.Body)

	resp = admin.Get("/admin/edit-product/" + id(mug.ID))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, `value="12.50"`)

	for _, path := range []string{"/admin/edit-product/9999", "/admin/edit-product/abc"} {
		resp = admin.Get(path)
		assert.Equal(t, http.StatusFound, resp.Status, path)
		assert.Equal(t, "/admin", resp.Location, path)
	}

	resp = admin.PostForm("/admin/update-product", url.Values{
		"productId": {id(mug.ID)}, "name": {"Big Mug"}, "description": {"Larger"}, "price": {"15"}, "imageUrl": {""},
	})
	assert.Equal(t, "/admin", resp.Location)
	require.NoError(t, s.db.First(&mug, mug.ID).Error)
	assert.Equal(t, "Big Mug", mug.Name)
	assert.Equal(t, 15.0, mug.Price)
	assert.Empty(t, mug.ImageURL)

	shopper := s.client(t)
	shopper.Login("c@shop.io", "pw")
	shopper.PostForm("/cart/add", url.Values{"productId": {id(mug.ID)}})
	assert.Equal(t, 1, testkit.CartQuantity(t, s.db, customer.ID, mug.ID))

	resp = admin.PostForm("/admin/delete-product", url.Values{"productId": {id(mug.ID)}})
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/admin", resp.Location)
	assert.EqualValues(t, 0, testkit.CartRows(t, s.db, "product_id = ?", mug.ID))

	assert.Zero(t, productCount(t, s.db))

	cart := shopper.Get("/cart")
	assert.Contains(t, cart.Body, "Your cart is empty.")
}

const pngData = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"

// productForm builds a multipart product form with an image part.
func productForm(t *testing.T, fields map[string]string, filename, image string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, _ = fw.Write([]byte(image))
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func postMultipart(t *testing.T, c *testkit.Client, path string, body *bytes.Buffer, contentType string) testkit.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, c.URL(path), body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}

func storedObjects(t *testing.T, root string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, "products"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return entries
}

func TestAdminImageUpload(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "admin@shop.io", "pw", auth.RoleAdmin)
	admin := s.client(t)
	admin.Login("admin@shop.io", "pw")

	body, ct := productForm(t, map[string]string{
		"name": "Poster", "price": "3.99", "imageUrl": "/ignored.png",
	}, "poster.PNG", pngData)
	resp := postMultipart(t, admin, "/admin/add-product", body, ct)
	require.Equal(t, http.StatusFound, resp.Status, resp.Body)

	var poster models.Product
	require.NoError(t, s.db.Where("name = ?", "Poster").First(&poster).Error)
	require.True(t, strings.HasPrefix(poster.ImageURL, "/storage/products/"), poster.ImageURL)
	assert.True(t, strings.HasSuffix(poster.ImageURL, ".png"))

	stored, err := os.ReadFile(filepath.Join(s.root, strings.TrimPrefix(poster.ImageURL, "/storage/")))
	require.NoError(t, err)
	assert.Equal(t, pngData, string(stored))

	served := admin.Get(poster.ImageURL)
	assert.Equal(t, http.StatusOK, served.Status)
	assert.Equal(t, pngData, served.Body)
	assert.Equal(t, "image/png", served.Header.Get("Content-Type"))

	resp = admin.PostForm("/admin/delete-product", url.Values{"productId": {id(poster.ID)}})
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Empty(t, storedObjects(t, s.root))
}

func TestAdminUploadRejectsHTML(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "admin@shop.io", "pw", auth.RoleAdmin)
	admin := s.client(t)
	admin.Login("admin@shop.io", "pw")

	body, ct := productForm(t, map[string]string{"name": "Trap", "price": "1"},
		"x.html", "<!DOCTYPE html><html><script>alert(1)</script></html>")
	resp := postMultipart(t, admin, "/admin/add-product", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Error adding product.", resp.Body)
	assert.Empty(t, storedObjects(t, s.root))
	assert.EqualValues(t, 0, productCount(t, s.db))
}

func TestAdminUpdateWithBadIDStoresNothing(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "admin@shop.io", "pw", auth.RoleAdmin)
	admin := s.client(t)
	admin.Login("admin@shop.io", "pw")

	body, ct := productForm(t, map[string]string{"productId": "abc", "name": "Poster", "price": "2"}, "p.png", pngData)
	resp := postMultipart(t, admin, "/admin/update-product", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Error updating product.", resp.Body)
	assert.Empty(t, storedObjects(t, s.root))

	body, ct = productForm(t, map[string]string{"productId": "1", "name": "Poster", "price": "free"}, "p.png", pngData)
	resp = postMultipart(t, admin, "/admin/update-product", body, ct)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Empty(t, storedObjects(t, s.root))
}

func TestLogout(t *testing.T) {
	s := newShop(t)
	testkit.CreateUser(t, s.db, "c@shop.io", "pw", auth.RoleCustomer)
	c := s.client(t)
	c.Login("c@shop.io", "pw")
	require.NotEmpty(t, c.Cookies())

	resp := c.Get("/logout")
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/login", resp.Location)
	assert.Empty(t, c.Cookies())

	resp = c.Get("/cart")
	assert.Equal(t, "/login", resp.Location)
}

func TestAmbientEndpoints(t *testing.T) {
	s := newShop(t)
	c := s.client(t)

	css := c.Get("/css/style.css")
	assert.Equal(t, http.StatusOK, css.Status)
	assert.Contains(t, css.Header.Get("Content-Type"), "text/css")
	assert.Empty(t, css.Header.Values("Set-Cookie"))

	home := c.Get("/")
	assert.Equal(t, http.StatusOK, home.Status)
	assert.NotEmpty(t, home.Header.Get("X-Request-ID"))

	m := c.Get("/metrics")
	assert.Equal(t, http.StatusOK, m.Status)
	assert.Contains(t, m.Body, "storefront_http_requests_total")
}

func TestRouteTable(t *testing.T) {
	k := kernel.NewHTTPKernel(kernel.Deps{})
	paths := map[string]bool{}
	for _, r := range k.Router().Routes() {
		paths[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /", "GET /login", "POST /login", "GET /register", "POST /register", "GET /logout",
		"GET /admin", "POST /admin/add-product", "POST /admin/delete-product",
		"GET /admin/edit-product/{id}", "POST /admin/update-product",
		"GET /cart", "POST /cart/add", "POST /cart/remove", "POST /cart/update-quantity",
		"GET /checkout", "GET /shipping-details", "POST /place-order",
	} {
		assert.True(t, paths[want], want)
	}
}
