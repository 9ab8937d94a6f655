package onsocial

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// LoginPayload is the login request body. Either alias or email can
// carry the identifier; alias wins when both are present.
type LoginPayload struct {
	Alias    string `json:"alias"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetIdentifier returns the first non empty identifier field.
func (p LoginPayload) GetIdentifier() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Email
}

// GetPassword returns the login password.
func (p LoginPayload) GetPassword() string {
	return p.Password
}

// HTTPController exposes the service over HTTP. All authorization
// decisions happen in the guard middleware before these handlers run;
// handlers only implement business operations.
type HTTPController struct {
	auth      Authenticator
	provider  *UserProvider
	registrar *RegisterUserHandler
	users     *UserService
	posts     *PostService
	keys      *KeyPair
	keyID     string
	ctxKey    string
	debug     bool
	logger    Logger
}

func NewHTTPController(
	auth Authenticator,
	provider *UserProvider,
	registrar *RegisterUserHandler,
	users *UserService,
	posts *PostService,
	keys *KeyPair,
) *HTTPController {
	return &HTTPController{
		auth:      auth,
		provider:  provider,
		registrar: registrar,
		users:     users,
		posts:     posts,
		keys:      keys,
		keyID:     DefaultKeyID,
		ctxKey:    ContextKey,
		logger:    defLogger{},
	}
}

func (h *HTTPController) WithLogger(l Logger) *HTTPController {
	if l != nil {
		h.logger = l
	}
	return h
}

func (h *HTTPController) WithDebug(debug bool) *HTTPController {
	h.debug = debug
	return h
}

func (h *HTTPController) WithKeyID(keyID string) *HTTPController {
	if keyID != "" {
		h.keyID = keyID
	}
	return h
}

// WithContextKey aligns the controller with the local the guard
// middleware stores session claims under.
func (h *HTTPController) WithContextKey(key string) *HTTPController {
	if key != "" {
		h.ctxKey = key
	}
	return h
}

// RegisterRoutes mounts every endpoint on the app.
func (h *HTTPController) RegisterRoutes(app *fiber.App) {
	wellKnown := app.Group("/.well-known")
	wellKnown.Get("/jwks.json", h.JWKS)

	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/check-alias", h.CheckAlias)
	auth.Get("/check-email", h.CheckEmail)

	users := app.Group("/users")
	users.Get("/find_all", h.ListUsers)
	users.Get("/find_specific/:id", h.GetUser)
	users.Put("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)

	posts := app.Group("/posts")
	posts.Get("/findall", h.ListPosts)
	posts.Get("/byuser/:user_id", h.ListPostsByUser)
	posts.Get("/specific/:post_id", h.GetPost)
	posts.Post("/add", h.CreatePost)
	posts.Put("/update/:id", h.UpdatePost)
	posts.Delete("/delete/:id", h.DeletePost)
}

// JWKS publishes the verification key set.
func (h *HTTPController) JWKS(c *fiber.Ctx) error {
	raw, err := h.keys.JWKS(h.keyID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// Register creates a new account and returns its summary.
func (h *HTTPController) Register(c *fiber.Ctx) error {
	payload := RegisterUserMessage{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if h.debug {
		h.logger.Debug("register payload", "body", print.MaybePrettyJSON(payload))
	}

	user, err := h.registrar.Execute(c.Context(), payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// Login verifies credentials and returns a session token plus the
// account summary.
func (h *HTTPController) Login(c *fiber.Ctx) error {
	payload := LoginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	token, identity, err := h.auth.Login(c.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    identity.ID(),
			"alias": identity.Alias(),
			"email": identity.Email(),
			"role":  identity.Role(),
		},
	})
}

// Logout acknowledges the client discarding its token. Sessions are
// stateless so there is nothing to invalidate server side.
func (h *HTTPController) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckAlias reports alias availability for registration forms.
func (h *HTTPController) CheckAlias(c *fiber.Ctx) error {
	alias := c.Query("alias")
	if alias == "" {
		return errors.New("alias query parameter is required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	available, err := h.provider.AliasAvailable(c.Context(), alias)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"available": available})
}

// CheckEmail reports email availability for registration forms.
func (h *HTTPController) CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return errors.New("email query parameter is required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	available, err := h.provider.EmailAvailable(c.Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"available": available})
}

func (h *HTTPController) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *HTTPController) GetUser(c *fiber.Ctx) error {
	out, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *HTTPController) UpdateUser(c *fiber.Ctx) error {
	payload := UserPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	out, err := h.users.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *HTTPController) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HTTPController) ListPosts(c *fiber.Ctx) error {
	out, err := h.posts.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *HTTPController) ListPostsByUser(c *fiber.Ctx) error {
	out, err := h.posts.ListByUser(c.Context(), c.Params("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *HTTPController) GetPost(c *fiber.Ctx) error {
	out, err := h.posts.Get(c.Context(), c.Params("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreatePost stores a new post owned by the session subject.
func (h *HTTPController) CreatePost(c *fiber.Ctx) error {
	claims, ok := GetFiberClaims(c, h.ctxKey)
	if !ok {
		return ErrUnauthenticated
	}

	payload := PostPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	out, err := h.posts.Create(c.Context(), claims.UserID(), payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *HTTPController) UpdatePost(c *fiber.Ctx) error {
	payload := PostPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	out, err := h.posts.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *HTTPController) DeletePost(c *fiber.Ctx) error {
	if err := h.posts.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
