package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GoncaloNogueira1/filmhub/internal/domain"
	"github.com/GoncaloNogueira1/filmhub/internal/search"
	"github.com/GoncaloNogueira1/filmhub/internal/service"
	"github.com/GoncaloNogueira1/filmhub/internal/store"
	"github.com/GoncaloNogueira1/filmhub/internal/tui/components"
	"github.com/GoncaloNogueira1/filmhub/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateLogin ApplicationState = iota
	StateBrowsing
	StateDetail
	StateSearching
	StateHelp
	StateConfirmLogout
)

// BrowseView selects which list the browsing state shows
type BrowseView int

const (
	ViewCatalog BrowseView = iota
	ViewWatchlist
	ViewRecommendations
)

func (v BrowseView) String() string {
	switch v {
	case ViewWatchlist:
		return "Watchlist"
	case ViewRecommendations:
		return "For You"
	default:
		return "Browse"
	}
}

// loadMoreThreshold is how close to the bottom the cursor may get before
// the next catalog page is requested.
const loadMoreThreshold = 5

// statusTimeout is how long transient status messages stay visible.
const statusTimeout = 4 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State      ApplicationState
	ActiveView BrowseView
	Ready      bool

	// Stores (single source of truth; views re-read on every change)
	Session   *store.SessionStore
	Catalog   *store.CatalogStore
	Watchlist *store.WatchlistStore

	// Collaborators
	Auth        domain.AuthRepository
	CatalogRepo domain.CatalogRepository
	RatingsSvc  *service.RatingsService
	RecsSvc     *service.RecommendationsService

	watcher *StoreWatcher
	logger  *slog.Logger

	// UI components
	loginForm     *components.LoginForm
	catalogList   *components.MovieList
	watchlistList *components.MovieList
	recsList      *components.MovieList
	detail        *components.Detail
	searchInput   textinput.Model

	// Data shown outside the stores
	recommendations *domain.RecommendationSet

	// Pending registration credentials for the auto-login after sign-up
	pendingEmail    string
	pendingPassword string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(
	session *store.SessionStore,
	catalog *store.CatalogStore,
	watchlist *store.WatchlistStore,
	auth domain.AuthRepository,
	catalogRepo domain.CatalogRepository,
	ratingsSvc *service.RatingsService,
	recsSvc *service.RecommendationsService,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	searchField := textinput.New()
	searchField.Placeholder = "search movies..."
	searchField.Prompt = "s "
	searchField.PromptStyle = styles.FilterPromptStyle

	state := StateLogin
	if session.IsAuthenticated() {
		state = StateBrowsing
	}

	m := Model{
		State:         state,
		Session:       session,
		Catalog:       catalog,
		Watchlist:     watchlist,
		Auth:          auth,
		CatalogRepo:   catalogRepo,
		RatingsSvc:    ratingsSvc,
		RecsSvc:       recsSvc,
		watcher:       NewStoreWatcher(session, catalog, watchlist),
		logger:        logger,
		loginForm:     components.NewLoginForm(),
		catalogList:   components.NewMovieList("Browse"),
		watchlistList: components.NewMovieList("Watchlist"),
		recsList:      components.NewMovieList("For You"),
		detail:        components.NewDetail(),
		searchInput:   searchField,
	}

	probe := watchlist.Contains
	m.catalogList.SetSavedProbe(probe)
	m.watchlistList.SetSavedProbe(probe)
	m.recsList.SetSavedProbe(probe)

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.watcher.WaitForChange(),
		TickCmd(100 * time.Millisecond),
	}
	if m.Session.IsAuthenticated() {
		cmds = append(cmds, m.initialLoadCmds()...)
	}
	return tea.Batch(cmds...)
}

func (m Model) initialLoadCmds() []tea.Cmd {
	return []tea.Cmd{
		LoadPageCmd(m.Catalog, 1),
		RefreshWatchlistCmd(m.Watchlist),
		LoadRecommendationsCmd(m.RecsSvc, 0),
	}
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.syncFromStores()
		if m.Catalog.Loading() || m.Watchlist.Loading() {
			return m, TickCmd(100 * time.Millisecond)
		}
		return m, TickCmd(500 * time.Millisecond)

	case StoreChangedMsg:
		m.syncFromStores()
		return m, m.watcher.WaitForChange()

	case LoggedInMsg:
		m.State = StateBrowsing
		m.ActiveView = ViewCatalog
		m.loginForm.Reset()
		m.setStatus(fmt.Sprintf("Welcome, %s", msg.Profile.FullName()), false)
		cmds := append(m.initialLoadCmds(), ClearStatusCmd(statusTimeout))
		return m, tea.Batch(cmds...)

	case RegisteredMsg:
		// Account exists; complete the flow with the credentials just typed.
		email, password := m.pendingEmail, m.pendingPassword
		m.pendingEmail, m.pendingPassword = "", ""
		return m, LoginCmd(m.Session, m.Auth, email, password)

	case LoggedOutMsg:
		m.State = StateLogin
		m.ActiveView = ViewCatalog
		m.recommendations = nil
		m.recsList.SetMovies(nil)
		m.loginForm.Reset()
		return m, nil

	case PageLoadedMsg, WatchlistRefreshedMsg:
		m.syncFromStores()
		return m, nil

	case WatchlistToggledMsg:
		m.syncFromStores()
		if m.State == StateDetail && m.detail.Movie().ID == msg.MovieID {
			m.detail.SetSaved(msg.Added)
		}
		if msg.Added {
			m.setStatus(fmt.Sprintf("Saved %q", msg.Title), false)
		} else {
			m.setStatus(fmt.Sprintf("Removed %q", msg.Title), false)
		}
		return m, ClearStatusCmd(statusTimeout)

	case DetailLoadedMsg:
		m.State = StateDetail
		m.detail.SetMovie(msg.Movie, msg.Summary, msg.OwnRating)
		m.detail.SetSaved(m.Watchlist.Contains(msg.Movie.ID))
		return m, nil

	case RatedMsg:
		if m.State == StateDetail && m.detail.Movie().ID == msg.Rating.MovieID {
			rating := msg.Rating
			m.detail.SetOwnRating(&rating)
		}
		m.setStatus(fmt.Sprintf("Rated %q %d/5", msg.Title, msg.Rating.Score), false)
		return m, ClearStatusCmd(statusTimeout)

	case RecommendationsLoadedMsg:
		set := msg.Set
		m.recommendations = &set
		m.recsList.SetMovies(set.Movies)
		return m, nil

	case ErrMsg:
		return m.handleErrMsg(msg)

	case StatusMsg:
		m.setStatus(msg.Message, msg.IsError)
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleErrMsg(msg ErrMsg) (tea.Model, tea.Cmd) {
	m.logger.Error("ui action failed", "context", msg.Context, "error", msg.Err)

	if m.State == StateLogin {
		m.loginForm.SetError(userFacing(msg.Err))
		return m, nil
	}

	// A dead session cannot recover from browsing; fall back to login.
	if errors.Is(msg.Err, domain.ErrAuthFailed) {
		m.State = StateLogin
		m.loginForm.Reset()
		m.loginForm.SetError("session expired, sign in again")
		return m, nil
	}

	m.setStatus(msg.Context+": "+userFacing(msg.Err), true)
	return m, ClearStatusCmd(statusTimeout)
}

// userFacing flattens domain errors into short display strings.
func userFacing(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrServerOffline):
		return "server unreachable"
	case errors.Is(err, domain.ErrAuthFailed):
		return "invalid credentials"
	case errors.Is(err, domain.ErrNotFound):
		return "not found"
	case errors.As(err, &verr):
		return verr.Error()
	default:
		return err.Error()
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever is focused
	if msg.String() == "ctrl+c" {
		m.watcher.Close()
		return m, tea.Quit
	}

	switch m.State {
	case StateLogin:
		return m.handleLoginKeys(msg)
	case StateSearching:
		return m.handleSearchKeys(msg)
	case StateDetail:
		return m.handleDetailKeys(msg)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	case StateConfirmLogout:
		return m.handleConfirmLogoutKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, result := m.loginForm.Update(msg)
	if result == nil {
		return m, cmd
	}

	if result.Register {
		m.pendingEmail = result.Email
		m.pendingPassword = result.Password
		return m, RegisterCmd(m.Auth, domain.Registration{
			Email:    result.Email,
			Password: result.Password,
		})
	}
	return m, LoginCmd(m.Session, m.Auth, result.Email, result.Password)
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateBrowsing
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		m.State = StateBrowsing
		m.ActiveView = ViewCatalog
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if query == "" {
			return m, nil
		}
		return m, SearchCmd(m.Catalog, query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.syncFromStores()
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	movie := m.detail.Movie()

	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Quit):
		m.State = StateBrowsing
		return m, nil
	case key.Matches(msg, Keys.Watchlist):
		return m, ToggleWatchlistCmd(m.Watchlist, movie)
	case key.Matches(msg, Keys.Rate):
		score := int(msg.String()[0] - '0')
		return m, RateCmd(m.RatingsSvc, movie, score)
	}
	return m, nil
}

func (m Model) handleConfirmLogoutKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm):
		m.State = StateBrowsing
		return m, LogoutCmd(m.Session)
	case key.Matches(msg, Keys.Deny):
		m.State = StateBrowsing
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()

	// While the filter input captures keystrokes, everything routes there.
	if list.Filtering() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.watcher.Close()
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil
	case key.Matches(msg, Keys.NextTab):
		m.ActiveView = (m.ActiveView + 1) % 3
		m.syncFromStores()
		return m, m.viewEntryCmd()
	case key.Matches(msg, Keys.PrevTab):
		m.ActiveView = (m.ActiveView + 2) % 3
		m.syncFromStores()
		return m, m.viewEntryCmd()
	case key.Matches(msg, Keys.Filter):
		return m, list.StartFilter()
	case key.Matches(msg, Keys.Search):
		if m.ActiveView == ViewCatalog {
			m.State = StateSearching
			return m, m.searchInput.Focus()
		}
		return m, nil
	case key.Matches(msg, Keys.Escape):
		list.ClearFilter()
		if m.ActiveView == ViewCatalog && m.Catalog.Query() != "" {
			// Leaving a search restores the unfiltered listing.
			return m, LoadPageCmd(m.Catalog, 1)
		}
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		return m, m.refreshCmd()
	case key.Matches(msg, Keys.Watchlist):
		if movie, ok := list.Selected(); ok {
			return m, ToggleWatchlistCmd(m.Watchlist, movie)
		}
		return m, nil
	case key.Matches(msg, Keys.Enter):
		if movie, ok := list.Selected(); ok {
			return m, LoadDetailCmd(m.CatalogRepo, m.RatingsSvc, movie.ID)
		}
		return m, nil
	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout
		return m, nil
	}

	cmd := list.Update(msg)

	// Infinite scroll: approaching the bottom of the catalog pulls the
	// next page. The store drops the request if one is already in flight.
	if m.ActiveView == ViewCatalog && list.NearEnd(loadMoreThreshold) &&
		m.Catalog.HasMore() && !m.Catalog.Loading() {
		return m, tea.Batch(cmd, LoadMoreCmd(m.Catalog))
	}

	return m, cmd
}

// viewEntryCmd lazily loads a view's data the first time it is opened.
func (m *Model) viewEntryCmd() tea.Cmd {
	switch m.ActiveView {
	case ViewWatchlist:
		if m.Watchlist.Count() == 0 && !m.Watchlist.Loading() {
			return RefreshWatchlistCmd(m.Watchlist)
		}
	case ViewRecommendations:
		if m.recommendations == nil {
			return LoadRecommendationsCmd(m.RecsSvc, 0)
		}
	}
	return nil
}

func (m *Model) refreshCmd() tea.Cmd {
	switch m.ActiveView {
	case ViewWatchlist:
		return RefreshWatchlistCmd(m.Watchlist)
	case ViewRecommendations:
		return LoadRecommendationsCmd(m.RecsSvc, 0)
	default:
		return LoadPageCmd(m.Catalog, 1)
	}
}

func (m *Model) activeList() *components.MovieList {
	switch m.ActiveView {
	case ViewWatchlist:
		return m.watchlistList
	case ViewRecommendations:
		return m.recsList
	default:
		return m.catalogList
	}
}

// syncFromStores re-reads every store into the view components.
func (m *Model) syncFromStores() {
	items := m.Catalog.Items()
	if m.State == StateSearching {
		// Preview while typing: narrow the loaded items locally before
		// the server search is submitted.
		if query := strings.TrimSpace(m.searchInput.Value()); query != "" {
			items = search.Filter(query, items)
		}
	}
	m.catalogList.SetMovies(items)
	m.catalogList.SetLoading(m.Catalog.Loading())
	m.catalogList.SetSpinnerFrame(m.SpinnerFrame)
	if query := m.Catalog.Query(); query != "" {
		m.catalogList.SetTitle(fmt.Sprintf("Browse %q", query))
	} else {
		m.catalogList.SetTitle("Browse")
	}

	entries := m.Watchlist.Entries()
	movies := make([]domain.Movie, len(entries))
	for i, e := range entries {
		movies[i] = e.Movie
	}
	m.watchlistList.SetMovies(movies)
	m.watchlistList.SetLoading(m.Watchlist.Loading())
	m.watchlistList.SetSpinnerFrame(m.SpinnerFrame)

	if m.Session.IsAuthenticated() {
		if m.State == StateLogin {
			m.State = StateBrowsing
		}
	} else if m.State != StateLogin {
		m.State = StateLogin
	}
}

func (m *Model) updateLayout() {
	listHeight := max(5, m.Height-4)
	listWidth := max(20, m.Width-2)
	m.catalogList.SetSize(listWidth, listHeight)
	m.watchlistList.SetSize(listWidth, listHeight)
	m.recsList.SetSize(listWidth, listHeight)
	m.detail.SetSize(listWidth, listHeight)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
}

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "loading..."
	}

	switch m.State {
	case StateLogin:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.loginForm.View())
	case StateHelp:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.helpView())
	case StateConfirmLogout:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
			styles.ModalStyle.Render("Log out? (y/n)"))
	case StateDetail:
		return lipgloss.JoinVertical(lipgloss.Left, m.detail.View(), m.statusBar())
	case StateSearching:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.tabBar(),
			m.searchInput.View(),
			m.activeList().View(),
			m.statusBar(),
		)
	default:
		return lipgloss.JoinVertical(lipgloss.Left, m.tabBar(), m.activeList().View(), m.statusBar())
	}
}

func (m Model) tabBar() string {
	tabs := make([]string, 0, 3)
	for _, v := range []BrowseView{ViewCatalog, ViewWatchlist, ViewRecommendations} {
		label := v.String()
		if v == ViewWatchlist && m.Watchlist.Count() > 0 {
			label = fmt.Sprintf("%s (%d)", label, m.Watchlist.Count())
		}
		if v == m.ActiveView {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) statusBar() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.StatusErrorStyle.Render(m.StatusMsg)
		}
		return styles.StatusBarStyle.Render(m.StatusMsg)
	}

	var left string
	switch m.ActiveView {
	case ViewWatchlist:
		left = fmt.Sprintf("%d saved", m.Watchlist.Count())
	case ViewRecommendations:
		if m.recommendations != nil {
			left = fmt.Sprintf("%d picks · %s", m.recommendations.Count, m.recommendations.Strategy)
		}
	default:
		left = fmt.Sprintf("%d movies", m.Catalog.Len())
		if m.Catalog.HasMore() {
			left += " · scroll for more"
		}
	}

	hint := "/ filter · s search · w save · enter details · ? help · q quit"
	return styles.StatusBarStyle.Render(left + "  " + styles.DimStyle.Render(hint))
}

func (m Model) helpView() string {
	rows := []string{
		styles.ModalTitleStyle.Render("Keys"),
		"j/k or ↑/↓    move",
		"g/G           top / bottom",
		"C-u/C-d       half page",
		"tab           switch view",
		"enter         movie details",
		"w             save / unsave",
		"1-5           rate (in details)",
		"/             filter loaded movies",
		"s             search the catalog",
		"r             refresh current view",
		"L             log out",
		"q             quit",
	}
	return styles.ModalStyle.Render(strings.Join(rows, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
