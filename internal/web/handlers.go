package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/poku-e/championdex/internal/champion"
	"github.com/poku-e/championdex/internal/export"
	"github.com/poku-e/championdex/internal/filter"
	"github.com/poku-e/championdex/internal/group"
	"github.com/poku-e/championdex/internal/session"
	"github.com/poku-e/championdex/internal/view"
)

// fragmentResp is what every /ui call answers with.
type fragmentResp struct {
	HTML   string         `json:"html"`
	Count  view.Indicator `json:"count"`
	Active []string       `json:"active,omitempty"`
	Total  int            `json:"total"`
}

// ---------- Pipeline ----------

// build runs filter, group and view-model for one variant.
func (s *Server) build(v view.Variant, crit filter.Criteria) view.Page {
	res := s.group(v, filter.Apply(s.deps.Catalog.Champions, crit))

	var hint string
	if res.Len() == 0 && strings.TrimSpace(crit.Search) != "" {
		// Only offer a name when the search text alone is what failed.
		if len(filter.Apply(s.deps.Catalog.Champions, filter.Criteria{Search: crit.Search})) == 0 {
			hint = s.index.Closest(crit.Search)
		}
	}
	return view.Build(res, view.Options{Variant: v, Assets: s.deps.Assets, Suggestion: hint})
}

func (s *Server) group(v view.Variant, list []champion.Champion) group.Result {
	if v == view.Multi {
		return group.ByRarityRank(list, s.deps.Policy)
	}
	return group.ByRarity(list, s.deps.Policy)
}

// ---------- Session ----------

// sessionID returns the visitor's id, issuing a new cookie when the
// browser has none or the server forgot it.
func (s *Server) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(s.deps.Cookie); err == nil && id != "" {
		if _, ok := s.deps.Sessions.Get(id); ok {
			return id
		}
	}
	id := s.deps.Sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.deps.Cookie, id, 0, "/", "", false, true)
	return id
}

// stamp reads the page token and sequence number the page script sends
// with every update. Requests without them are never treated as stale.
func stamp(c *gin.Context) session.Stamp {
	seq, err := strconv.ParseInt(c.PostForm("seq"), 10, 64)
	if err != nil {
		return session.Stamp{}
	}
	return session.Stamp{Page: c.PostForm("page"), Seq: seq}
}

func (s *Server) state(c *gin.Context) session.State {
	st, _ := s.deps.Sessions.Get(s.sessionID(c))
	return st
}

// ---------- Pages ----------

func (s *Server) singlePage(c *gin.Context) {
	st := s.state(c).Single
	s.renderPage(c, view.PageData{
		Variant: view.Single,
		Search:  st.Search,
		Options: view.SelectOptions(s.rarities, st.Rarity),
		Result:  s.build(view.Single, st.Criteria()),
	})
}

func (s *Server) multiPage(c *gin.Context) {
	st := s.state(c).Multi
	s.renderPage(c, view.PageData{
		Variant: view.Multi,
		Search:  st.Search,
		Toggles: view.Toggles(s.rarities, s.domain.Ranks, st.Active()),
		Result:  s.build(view.Multi, st.Criteria()),
	})
}

func (s *Server) renderPage(c *gin.Context, d view.PageData) {
	stats := s.deps.Catalog.Stats()
	d.Title = s.deps.Title
	d.Stats = stats
	d.StatItems = view.NewStatItems(stats, s.rarities)
	d.RankLegend = s.domain.Ranks

	var buf bytes.Buffer
	if err := view.RenderPage(&buf, d); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// ---------- UI updates ----------

func (s *Server) singleSearch(c *gin.Context) {
	q := c.PostForm("q")
	s.updateSingle(c, func(st filter.Single) (filter.Single, error) {
		return st.WithSearch(q), nil
	})
}

func (s *Server) singleRarity(c *gin.Context) {
	v := c.PostForm("rarity")
	s.updateSingle(c, func(st filter.Single) (filter.Single, error) {
		return st.WithRarity(s.domain, v)
	})
}

func (s *Server) multiSearch(c *gin.Context) {
	q := c.PostForm("q")
	s.updateMulti(c, func(st filter.Multi) (filter.Multi, error) {
		return st.WithSearch(q), nil
	})
}

func (s *Server) multiToggle(c *gin.Context) {
	axis := filter.Axis(c.DefaultPostForm("axis", string(filter.AxisRarity)))
	v := c.PostForm("filter")
	s.updateMulti(c, func(st filter.Multi) (filter.Multi, error) {
		return st.Toggle(s.domain, axis, v)
	})
}

func (s *Server) updateSingle(c *gin.Context, fn func(filter.Single) (filter.Single, error)) {
	next, err := s.deps.Sessions.Apply(s.sessionID(c), stamp(c), func(st session.State) (session.State, error) {
		single, err := fn(st.Single)
		st.Single = single
		return st, err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.fragment(c, s.build(view.Single, next.Single.Criteria()), nil)
}

func (s *Server) updateMulti(c *gin.Context, fn func(filter.Multi) (filter.Multi, error)) {
	next, err := s.deps.Sessions.Apply(s.sessionID(c), stamp(c), func(st session.State) (session.State, error) {
		multi, err := fn(st.Multi)
		st.Multi = multi
		return st, err
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.fragment(c, s.build(view.Multi, next.Multi.Criteria()), next.Multi.Active())
}

func (s *Server) fragment(c *gin.Context, p view.Page, active []string) {
	html, err := view.FragmentString(p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fragmentResp{
		HTML:   html,
		Count:  p.Count,
		Active: active,
		Total:  len(s.deps.Catalog.Champions),
	})
}

// ---------- JSON API ----------

type apiGroup struct {
	Rarity    string              `json:"rarity"`
	Champions []champion.Champion `json:"champions"`
}

type apiChampionsResp struct {
	Count   view.Indicator `json:"count"`
	Groups  []apiGroup     `json:"groups"`
	Dropped int            `json:"dropped"`
}

// apiChampions filters without touching the visitor's state. rarity and
// rank may repeat.
func (s *Server) apiChampions(c *gin.Context) {
	crit := filter.Criteria{Search: c.Query("q")}
	for _, v := range c.QueryArray("rarity") {
		if v == filter.All || v == "" {
			continue
		}
		if !slices.Contains(s.domain.Rarities, v) {
			s.fail(c, fmt.Errorf("%w: rarity %q", filter.ErrUnknownValue, v))
			return
		}
		crit.Rarities = append(crit.Rarities, v)
	}
	for _, v := range c.QueryArray("rank") {
		if v == filter.All || v == "" {
			continue
		}
		if !slices.Contains(s.domain.Ranks, v) {
			s.fail(c, fmt.Errorf("%w: rank %q", filter.ErrUnknownValue, v))
			return
		}
		crit.Ranks = append(crit.Ranks, v)
	}

	res := group.ByRarity(filter.Apply(s.deps.Catalog.Champions, crit), s.deps.Policy)
	out := apiChampionsResp{Count: view.NewIndicator(res.Len()), Groups: []apiGroup{}, Dropped: res.Dropped}
	for _, g := range res.Groups {
		out.Groups = append(out.Groups, apiGroup{Rarity: g.Rarity, Champions: g.Champions})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) apiStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Catalog.Stats())
}

func (s *Server) apiSuggest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	names := s.index.Complete(c.Query("q"), limit)
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

// exportXLSX downloads what the visitor currently sees on the page named
// by ?variant (single by default), in display order.
func (s *Server) exportXLSX(c *gin.Context) {
	st := s.state(c)
	v, crit := view.Single, st.Single.Criteria()
	if view.Variant(c.Query("variant")) == view.Multi {
		v, crit = view.Multi, st.Multi.Criteria()
	}
	res := s.group(v, filter.Apply(s.deps.Catalog.Champions, crit))
	var list []champion.Champion
	for _, g := range res.Groups {
		list = append(list, g.Champions...)
	}

	var buf bytes.Buffer
	if err := export.XLSX(&buf, list); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="champions.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ---------- Errors ----------

// fail answers 400 for bad filter input, 409 for an update overtaken by a
// newer one and 500 for everything else.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, session.ErrStale) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, filter.ErrUnknownValue) || errors.Is(err, filter.ErrUnknownAxis) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.deps.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
