package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/catalog"
	"github.com/rajivgeraev/flippy-motors/internal/config"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/pages"
	"github.com/rajivgeraev/flippy-motors/internal/search"
	"github.com/rajivgeraev/flippy-motors/internal/services/auth"
	"github.com/rajivgeraev/flippy-motors/internal/services/feedback"
	"github.com/rajivgeraev/flippy-motors/internal/services/recommendation"
	"github.com/rajivgeraev/flippy-motors/internal/services/vehicle"
	"github.com/rajivgeraev/flippy-motors/internal/storage"
	"github.com/rajivgeraev/flippy-motors/internal/store"
)

const usage = `usage: flippy <command> [flags]

commands:
  search      search listings (-q, -brand, -body, -fuel, -sort, -page ...)
  show        show one listing: show <id>
  compare     compare listings: compare <id,id,...>
  similar     similar listings: similar <id>
  reco        recommendations (-mode hybrid|candidate)
  login       log in (-email, -password)
  register    create an account (-email, -password, -confirm, -name, -phone)
  me          print the current profile
  logout      forget the stored token
  favorites   list local favorites
  fav-add     add a favorite: fav-add <id>
  fav-remove  remove a favorite: fav-remove <id>
  fav-sync    replace local favorites with the server list`

// cliScope область хранилища, которую CLI использует вместо браузера
const cliScope = "cli"

type app struct {
	cfg       *config.Config
	auth      *store.AuthStore
	favorites *store.FavoriteStore

	authService     *auth.AuthService
	vehicles        *vehicle.VehicleService
	recommendations *recommendation.RecommendationService
	feedback        *feedback.FeedbackService
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.LoadCLIConfig()

	backend, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("❌ Ошибка при открытии хранилища: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	a, err := newApp(ctx, cfg, backend.Scope(getScope()))
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки состояния: %v", err)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		backend.Close()
		log.Fatalf("❌ %s: %v", os.Args[1], err)
	}
}

func getScope() string {
	if scope := os.Getenv("CLI_SCOPE"); scope != "" {
		return scope
	}
	return cliScope
}

func newApp(ctx context.Context, cfg *config.Config, s storage.Storage) (*app, error) {
	authStore, err := store.NewAuthStore(ctx, s)
	if err != nil {
		return nil, err
	}
	favorites, err := store.NewFavoriteStore(ctx, s)
	if err != nil {
		return nil, err
	}

	api := apiclient.New(cfg).Bound(authStore)
	return &app{
		cfg:             cfg,
		auth:            authStore,
		favorites:       favorites,
		authService:     auth.NewAuthService(api),
		vehicles:        vehicle.NewVehicleService(api),
		recommendations: recommendation.NewRecommendationService(api),
		feedback:        feedback.NewFeedbackService(api),
	}, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "search":
		return a.search(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "compare":
		return a.compare(ctx, args)
	case "similar":
		return a.similar(ctx, args)
	case "reco":
		return a.reco(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "me":
		return a.me(ctx)
	case "logout":
		return a.logout(ctx)
	case "favorites":
		return a.listFavorites()
	case "fav-add":
		return a.favAdd(ctx, args)
	case "fav-remove":
		return a.favRemove(ctx, args)
	case "fav-sync":
		return a.favSync(ctx)
	default:
		return fmt.Errorf("unknown command\n%s", usage)
	}
}

func (a *app) search(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("search", flag.ExitOnError)
	values := url.Values{}
	for _, key := range []string{"q", "brand", "model", "fuel_type", "transmission", "body_type", "location",
		"year_min", "year_max", "price_min", "price_max", "mileage_max", "sort", "page"} {
		cmd.Func(key, "filter "+key, func(v string) error {
			values.Set(key, v)
			return nil
		})
	}
	category := cmd.String("category", "", "category slug (suv, sedan, electric, ...)")
	cmd.Parse(args)

	filters := pages.ParseSearchFilters(values)
	if *category != "" {
		filters = pages.LookupCategory(*category).Apply(filters)
	}

	var src catalog.Source = catalog.NewLiveSource(a.vehicles)
	if a.cfg.MockFallback {
		stub, err := catalog.NewMockSource()
		if err != nil {
			return err
		}
		src = &catalog.FallbackSource{Primary: src, Fallback: stub}
	}

	page, err := src.Search(ctx, filters)
	if err != nil {
		return err
	}
	if len(page.Results) == 0 {
		fmt.Println("No vehicles found")
		return nil
	}

	printVehicles(page.Results, a.favorites)
	p := search.NewPagination(page.Total, search.PageOf(filters), search.PageSizeOf(filters))
	if !p.Visible() {
		fmt.Printf("\n%d total (%s)\n", p.Total, page.Origin)
		return nil
	}
	fmt.Printf("\npage %d of %d, %d total (%s)\n", p.Page, p.TotalPages, p.Total, page.Origin)
	if p.HasNext {
		next := search.WithPage(filters, p.Page+1)
		fmt.Printf("next: flippy search with %s\n", search.EncodeQuery(next))
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	v, err := a.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.track(ctx, models.FeedbackRequest{VehicleID: id, Action: models.ActionView})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%d\n", v.ID)
	fmt.Fprintf(w, "Title\t%s\n", deref(v.Title))
	fmt.Fprintf(w, "Price\t%s\n", pages.FormatPrice(v.Price))
	fmt.Fprintf(w, "Mileage\t%s\n", pages.FormatMileage(v.Mileage))
	fmt.Fprintf(w, "Fuel\t%s\n", deref(v.FuelType))
	fmt.Fprintf(w, "Transmission\t%s\n", deref(v.Transmission))
	fmt.Fprintf(w, "Body\t%s\n", deref(v.BodyType))
	fmt.Fprintf(w, "Location\t%s\n", deref(v.Location))
	fmt.Fprintf(w, "Seller\t%s %s\n", deref(v.SellerName), deref(v.SellerPhone))
	fmt.Fprintf(w, "Favorite\t%t\n", a.favorites.IsFavorite(id))
	return w.Flush()
}

func (a *app) compare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected comma separated ids")
	}
	ids := pages.ParseCompareIDs(strings.Join(args, ","))
	if len(ids) == 0 {
		return fmt.Errorf("no vehicle ids given")
	}

	vehicles, err := a.vehicles.Compare(ctx, ids)
	if err != nil {
		return err
	}
	a.track(ctx, models.FeedbackRequest{
		VehicleID: ids[0],
		Action:    models.ActionCompare,
		Context:   map[string]any{"compared_with": ids[1:]},
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "\t")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%s\t", deref(v.Title))
	}
	fmt.Fprintln(w)
	rows := []struct {
		label string
		value func(models.Vehicle) string
	}{
		{"Price", func(v models.Vehicle) string { return pages.FormatPrice(v.Price) }},
		{"Year", func(v models.Vehicle) string { return intString(v.Year) }},
		{"Mileage", func(v models.Vehicle) string { return pages.FormatMileage(v.Mileage) }},
		{"Fuel", func(v models.Vehicle) string { return deref(v.FuelType) }},
		{"Body", func(v models.Vehicle) string { return deref(v.BodyType) }},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t", row.label)
		for _, v := range vehicles {
			fmt.Fprintf(w, "%s\t", row.value(v))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func (a *app) similar(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("similar", flag.ExitOnError)
	limit := cmd.Int("limit", pages.SimilarCount, "number of vehicles")
	cmd.Parse(args)

	id, err := argID(cmd.Args())
	if err != nil {
		return err
	}
	recos, err := a.recommendations.Similar(ctx, id, *limit)
	if err != nil {
		return err
	}
	printRecommendations(recos)
	return nil
}

func (a *app) reco(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("reco", flag.ExitOnError)
	mode := cmd.String("mode", pages.ModeHybrid, "hybrid or candidate")
	limit := cmd.Int("limit", pages.RecommendationCount, "number of vehicles")
	cmd.Parse(args)

	if !a.auth.IsAuthenticated() {
		return fmt.Errorf("login required")
	}

	var (
		recos []models.Recommendation
		err   error
	)
	switch *mode {
	case pages.ModeHybrid:
		recos, err = a.recommendations.Hybrid(ctx, *limit)
	case pages.ModeCandidate:
		recos, err = a.recommendations.Candidates(ctx, *limit)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		return err
	}
	printRecommendations(recos)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "account email")
	password := cmd.String("password", "", "account password")
	cmd.Parse(args)

	req := models.LoginRequest{Email: *email, Password: *password}
	if errs := auth.ValidateLogin(req); len(errs) > 0 {
		return validationError(errs)
	}

	resp, err := a.authService.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := a.auth.SetAuth(ctx, resp.User, resp.AccessToken); err != nil {
		return err
	}
	fmt.Printf("✅ Logged in as %s\n", resp.User.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ExitOnError)
	email := cmd.String("email", "", "account email")
	password := cmd.String("password", "", "account password")
	confirm := cmd.String("confirm", "", "repeat the password")
	name := cmd.String("name", "", "full name")
	phone := cmd.String("phone", "", "phone number")
	cmd.Parse(args)

	req := models.RegisterRequest{
		Email:       *email,
		Password:    *password,
		FullName:    *name,
		PhoneNumber: *phone,
	}
	if errs := auth.ValidateRegister(req, *confirm); len(errs) > 0 {
		return validationError(errs)
	}

	resp, err := a.authService.Register(ctx, req)
	if err != nil {
		return err
	}
	if err := a.auth.SetAuth(ctx, resp.User, resp.AccessToken); err != nil {
		return err
	}
	fmt.Printf("✅ Registered %s\n", resp.User.Email)
	return nil
}

func (a *app) me(ctx context.Context) error {
	if !a.auth.IsAuthenticated() {
		return fmt.Errorf("login required")
	}
	user, err := a.authService.Me(ctx)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			return fmt.Errorf("session expired, please login again")
		}
		return err
	}
	fmt.Printf("%s <%s>\n", deref(user.FullName), user.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx, a.auth); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) listFavorites() error {
	ids := a.favorites.IDs()
	if len(ids) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}
	fmt.Printf("%d favorites: %s\n", len(ids), strings.Join(ids, ", "))
	return nil
}

func (a *app) favAdd(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	if err := a.feedback.AddFavorite(ctx, id); err != nil {
		return err
	}
	return a.favorites.Add(ctx, id)
}

func (a *app) favRemove(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}
	if err := a.feedback.RemoveFavorite(ctx, id); err != nil {
		return err
	}
	return a.favorites.Remove(ctx, id)
}

func (a *app) favSync(ctx context.Context) error {
	remote, err := a.feedback.Favorites(ctx)
	if err != nil {
		return err
	}
	if err := a.favorites.Replace(ctx, remote); err != nil {
		return err
	}
	fmt.Printf("✅ Synced %d favorites\n", a.favorites.Count())
	return nil
}

// track отправляет событие, если пользователь вошёл
func (a *app) track(ctx context.Context, req models.FeedbackRequest) {
	if !a.auth.IsAuthenticated() {
		return
	}
	if err := a.feedback.Track(ctx, req); err != nil {
		log.Printf("⚠️ Не удалось отправить событие %s: %v", req.Action, err)
	}
}

func printVehicles(vs []models.Vehicle, favorites *store.FavoriteStore) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tYEAR\tPRICE\tLOCATION\t♥")
	for _, v := range vs {
		mark := ""
		if favorites.IsFavorite(v.IDString()) {
			mark = "♥"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, deref(v.Title), intString(v.Year), pages.FormatPrice(v.Price), deref(v.Location), mark)
	}
	w.Flush()
}

func printRecommendations(recos []models.Recommendation) {
	if len(recos) == 0 {
		fmt.Println("No recommendations")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tSCORE\tREASON")
	for _, r := range recos {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n",
			r.Vehicle.ID, deref(r.Vehicle.Title), pages.FormatPrice(r.Vehicle.Price), r.Score, r.Reason)
	}
	w.Flush()
}

func argID(args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("expected vehicle id")
	}
	return strings.TrimSpace(args[0]), nil
}

func validationError(errs map[string]string) error {
	parts := make([]string, 0, len(errs))
	for field, msg := range errs {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, "; "))
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
