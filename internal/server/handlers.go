package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Gigang-ST/gigang-website/internal/fees"
	"github.com/Gigang-ST/gigang-website/internal/gasapi"
	"github.com/Gigang-ST/gigang-website/internal/members"
	"github.com/Gigang-ST/gigang-website/internal/models"
	"github.com/Gigang-ST/gigang-website/internal/records"
	"github.com/Gigang-ST/gigang-website/internal/util"
	"github.com/Gigang-ST/gigang-website/internal/utmb"
	"github.com/Gigang-ST/gigang-website/internal/webhook"
)

const msgSheetUnavailable = "데이터를 불러올 수 없습니다. 잠시 후 다시 시도해주세요."

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "ts": util.NowKST()})
}

// handleSheetProxy streams the raw CSV of one table. The cache is bypassed:
// the proxy exists for debugging and ad-hoc exports, so staleness would
// only confuse.
func (s *Server) handleSheetProxy(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "sheet")
	if _, ok := s.export.GID(table); !ok {
		s.writeError(w, http.StatusNotFound, "unknown sheet")
		return
	}
	text, err := s.export.FetchRaw(r.Context(), table)
	if err != nil {
		s.log.Error("sheet proxy", "table", table, "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Write([]byte(text))
}

type racesResponse struct {
	Upcoming []models.Race `json:"upcoming"`
	Recent   []models.Race `json:"recent"`
}

func (s *Server) handleRaces(w http.ResponseWriter, r *http.Request) {
	var (
		comps []models.Competition
		apps  []models.CompApplication
		recs  []models.RaceRecord
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { comps, err = s.export.Races(ctx); return })
	g.Go(func() (err error) { apps, err = s.export.Participants(ctx); return })
	g.Go(func() (err error) { recs, err = s.export.Records(ctx); return })
	if err := g.Wait(); err != nil {
		s.log.Error("load races", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}

	races := records.BuildRaces(comps, apps, recs)
	for i := range races {
		races[i].Participants = records.DeduplicateParticipants(races[i].Participants)
	}
	upcoming, recent := records.SplitRaces(races)

	s.writeJSON(w, http.StatusOK, racesResponse{
		Upcoming: orEmpty(upcoming),
		Recent:   orEmpty(recent),
	})
}

func orEmpty(races []models.Race) []models.Race {
	if races == nil {
		return []models.Race{}
	}
	return races
}

// loadRecordsAndMembers is the shared fan-out for the leaderboard views.
func (s *Server) loadRecordsAndMembers(r *http.Request) ([]models.RaceRecord, []models.Member, error) {
	var (
		recs   []models.RaceRecord
		roster []models.Member
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { recs, err = s.export.Records(ctx); return })
	g.Go(func() (err error) { roster, err = s.export.Members(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return recs, roster, nil
}

func (s *Server) handleMarathonRecords(w http.ResponseWriter, r *http.Request) {
	recs, roster, err := s.loadRecordsAndMembers(r)
	if err != nil {
		s.log.Error("load marathon records", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"courses": records.MarathonBoards(recs, roster),
	})
}

// handlePBBoards serves the marathon leaderboards from the curated
// personal_best table behind the REST facade, the authoritative source when
// it is maintained.
func (s *Server) handlePBBoards(w http.ResponseWriter, r *http.Request) {
	var (
		pbs    []models.PersonalBest
		roster []models.Member
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { pbs, err = s.gas.PersonalBests(ctx); return })
	g.Go(func() (err error) { roster, err = s.export.Members(ctx); return })
	if err := g.Wait(); err != nil {
		if errors.Is(err, gasapi.ErrNotConfigured) {
			s.writeError(w, http.StatusServiceUnavailable, "personal_best 데이터가 설정되지 않았습니다.")
			return
		}
		s.log.Error("load personal bests", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"courses": records.MarathonPBBoards(pbs, roster),
	})
}

// triRecord decorates a triathlon record with its derived transition time.
type triRecord struct {
	models.RaceRecord
	Transition string `json:"transition"`
}

type triBoard struct {
	Course string      `json:"course"`
	Male   []triRecord `json:"male"`
	Female []triRecord `json:"female"`
}

func withTransitions(recs []models.RaceRecord) []triRecord {
	out := make([]triRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, triRecord{
			RaceRecord: r,
			Transition: records.CalcTransition(r.Record, r.SwimTime, r.BikeTime, r.RunTime),
		})
	}
	return out
}

func (s *Server) handleTriathlonRecords(w http.ResponseWriter, r *http.Request) {
	recs, roster, err := s.loadRecordsAndMembers(r)
	if err != nil {
		s.log.Error("load triathlon records", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	boards := records.TriathlonBoards(recs, roster)
	out := make([]triBoard, 0, len(boards))
	for _, b := range boards {
		out = append(out, triBoard{
			Course: b.Course,
			Male:   withTransitions(b.Male),
			Female: withTransitions(b.Female),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"courses": out})
}

// handleTrailRecords serves the trail board. Default sort is UTMB index
// descending from the record sheet; ?sort=elevation switches to cumulative
// elevation gain over the activity log.
func (s *Server) handleTrailRecords(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("sort") == "elevation" {
		s.handleTrailByElevation(w, r)
		return
	}
	recs, roster, err := s.loadRecordsAndMembers(r)
	if err != nil {
		s.log.Error("load trail records", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records.TrailBoard(recs, roster),
	})
}

func (s *Server) handleTrailByElevation(w http.ResponseWriter, r *http.Request) {
	var (
		logs   []models.ActivityLog
		roster []models.Member
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { logs, err = s.gas.ActivityLogs(ctx); return })
	g.Go(func() (err error) { roster, err = s.export.Members(ctx); return })
	if err := g.Wait(); err != nil {
		if errors.Is(err, gasapi.ErrNotConfigured) {
			s.writeError(w, http.StatusServiceUnavailable, "activity_log 데이터가 설정되지 않았습니다.")
			return
		}
		s.log.Error("load activity logs", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records.TrailBoardByElevation(logs, roster),
	})
}

type feeLookupRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
}

func (s *Server) handleFeeLookup(w http.ResponseWriter, r *http.Request) {
	var req feeLookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}
	if msg := members.ValidateBirthDate(req.BirthDate); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	var (
		roster []models.Member
		ledger []models.FeeRecord
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { roster, err = s.export.Members(ctx); return })
	g.Go(func() (err error) { ledger, err = s.export.Fees(ctx); return })
	if err := g.Wait(); err != nil {
		s.log.Error("load fee sheets", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}

	member, err := members.Verify(roster, req.Name, req.BirthDate)
	switch {
	case errors.Is(err, members.ErrNoMatch):
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, members.ErrNotActive):
		s.writeError(w, http.StatusForbidden, err.Error())
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, msgSheetUnavailable)
		return
	}

	s.writeJSON(w, http.StatusOK, fees.CalcFeeStatus(member, ledger))
}

func (s *Server) handleUtmbProfile(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	profile, err := s.utmb.FetchProfile(r.Context(), slug)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, utmb.ErrInvalidSlug):
			status = http.StatusBadRequest
		case errors.Is(err, utmb.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, utmb.ErrUnreachable):
			status = http.StatusBadGateway
		}
		s.writeError(w, status, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

// handleMemberUtmbList serves the member-to-UTMB-slug links the trail page
// uses to show which members have a registered runner profile.
func (s *Server) handleMemberUtmbList(w http.ResponseWriter, r *http.Request) {
	links, err := s.gas.MemberUtmbs(r.Context())
	if err != nil {
		if errors.Is(err, gasapi.ErrNotConfigured) {
			s.writeError(w, http.StatusServiceUnavailable, "member_utmb 데이터가 설정되지 않았습니다.")
			return
		}
		s.log.Error("load member utmb links", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return
	}
	if links == nil {
		links = []models.MemberUtmb{}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"links": links})
}

type memberUtmbRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	UtmbKey   string `json:"utmbKey"`
}

// handleMemberUtmbRegister links a verified member to their UTMB runner slug.
func (s *Server) handleMemberUtmbRegister(w http.ResponseWriter, r *http.Request) {
	var req memberUtmbRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}
	if !utmb.ValidSlug(req.UtmbKey) {
		s.writeError(w, http.StatusBadRequest, utmb.ErrInvalidSlug.Error())
		return
	}

	member, ok := s.verifyMember(w, r, req.Name, req.BirthDate)
	if !ok {
		return
	}

	created, err := s.gas.CreateMemberUtmb(r.Context(), models.MemberUtmb{
		MemberID: member.MemberID,
		UtmbKey:  req.UtmbKey,
	})
	if err != nil {
		if errors.Is(err, gasapi.ErrNotConfigured) {
			s.writeError(w, http.StatusServiceUnavailable, "member_utmb 데이터가 설정되지 않았습니다.")
			return
		}
		s.log.Error("create member utmb link", "err", err)
		s.writeError(w, http.StatusBadGateway, "제출 중 오류가 발생했습니다. 다시 시도해주세요.")
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

type joinRequest struct {
	Name          string `json:"name"`
	Gender        string `json:"gender"`
	BirthDate     string `json:"birthDate"`
	Phone         string `json:"phone"`
	AccountNumber string `json:"accountNumber"`
	Note          string `json:"note"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}

	name := members.SanitizeText(req.Name, 20)
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "이름을 입력해주세요.")
		return
	}
	if req.Gender != "male" && req.Gender != "female" {
		s.writeError(w, http.StatusBadRequest, "성별을 선택해주세요.")
		return
	}
	if req.BirthDate == "" {
		s.writeError(w, http.StatusBadRequest, "생년월일을 입력해주세요.")
		return
	}
	if msg := members.ValidateBirthDate(req.BirthDate); msg != "" {
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}

	sub := webhook.JoinSubmission{
		Name:          name,
		Gender:        req.Gender,
		BirthDate:     req.BirthDate,
		Phone:         members.SanitizeText(req.Phone, 20),
		AccountNumber: members.SanitizeText(req.AccountNumber, 50),
		Note:          members.SanitizeText(req.Note, 100),
	}
	if err := s.gateway.SubmitJoin(r.Context(), sub); err != nil {
		s.log.Error("submit join", "err", err)
		s.writeError(w, http.StatusBadGateway, "제출 중 오류가 발생했습니다. 다시 시도해주세요.")
		return
	}

	go s.notifier.JoinReceived(name)

	// Optimistic entity. The sink assigns the real member id; this one only
	// identifies the submission in the caller's local state.
	s.writeJSON(w, http.StatusAccepted, models.Member{
		MemberID:  "pending_" + uuid.NewString(),
		FullName:  name,
		Gender:    req.Gender,
		BirthDate: members.NormalizeBirthDate(req.BirthDate),
		Phone:     sub.Phone,
		Status:    "active",
		JoinDate:  util.TodayKST(),
		Note:      sub.Note,
	})
}

type participationRequest struct {
	Name             string `json:"name"`
	BirthDate        string `json:"birthDate"`
	CompetitionID    string `json:"competitionId"`
	CompetitionName  string `json:"competitionName"`
	CompetitionClass string `json:"competitionClass"`
	Pledge           string `json:"pledge"`
}

func (s *Server) verifyMember(w http.ResponseWriter, r *http.Request, name, birthDate string) (models.Member, bool) {
	roster, err := s.export.Members(r.Context())
	if err != nil {
		s.log.Error("load roster", "err", err)
		s.writeError(w, http.StatusBadGateway, msgSheetUnavailable)
		return models.Member{}, false
	}
	member, err := members.Verify(roster, name, birthDate)
	switch {
	case errors.Is(err, members.ErrNoMatch):
		s.writeError(w, http.StatusNotFound, err.Error())
		return models.Member{}, false
	case errors.Is(err, members.ErrNotActive):
		s.writeError(w, http.StatusForbidden, err.Error())
		return models.Member{}, false
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, msgSheetUnavailable)
		return models.Member{}, false
	}
	return member, true
}

func (s *Server) handleParticipation(w http.ResponseWriter, r *http.Request) {
	var req participationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}
	if req.CompetitionName == "" || req.CompetitionClass == "" {
		s.writeError(w, http.StatusBadRequest, "대회와 코스를 선택해주세요.")
		return
	}

	member, ok := s.verifyMember(w, r, req.Name, req.BirthDate)
	if !ok {
		return
	}

	sub := webhook.ParticipationSubmission{
		MemberID:         member.MemberID,
		MemberName:       members.SanitizeText(req.Name, 20),
		CompetitionID:    req.CompetitionID,
		CompetitionName:  req.CompetitionName,
		CompetitionClass: req.CompetitionClass,
		Pledge:           members.SanitizeText(req.Pledge, 100),
	}
	if err := s.gateway.SubmitParticipation(r.Context(), sub); err != nil {
		s.log.Error("submit participation", "err", err)
		s.writeError(w, http.StatusBadGateway, "제출 중 오류가 발생했습니다. 다시 시도해주세요.")
		return
	}

	go s.notifier.ParticipationReceived(sub.MemberName, sub.CompetitionName, sub.CompetitionClass)

	status := "applied"
	if req.CompetitionClass == "응원" {
		status = "cheering"
	}
	s.writeJSON(w, http.StatusAccepted, models.CompApplication{
		MemberID:        member.MemberID,
		FullName:        sub.MemberName,
		CompetitionID:   req.CompetitionID,
		CompetitionName: req.CompetitionName,
		Class:           req.CompetitionClass,
		Status:          status,
		Pledge:          sub.Pledge,
	})
}

type recordSubmitRequest struct {
	Name             string `json:"name"`
	BirthDate        string `json:"birthDate"`
	RecordType       string `json:"recordType"`
	CompetitionID    string `json:"competitionId"`
	CompetitionName  string `json:"competitionName"`
	CompetitionClass string `json:"competitionClass"`
	Record           string `json:"record"`
	CompetitionDate  string `json:"competitionDate"`
}

func (s *Server) handleRecordSubmit(w http.ResponseWriter, r *http.Request) {
	var req recordSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "잘못된 요청입니다.")
		return
	}
	switch req.RecordType {
	case "marathon", "trail", "triathlon":
	default:
		s.writeError(w, http.StatusBadRequest, "기록 종류를 선택해주세요.")
		return
	}
	if req.CompetitionName == "" || req.CompetitionDate == "" {
		s.writeError(w, http.StatusBadRequest, "대회 정보를 입력해주세요.")
		return
	}
	if sec := records.ParseTimeToSeconds(req.Record); sec <= 0 || sec >= records.InfiniteSeconds {
		s.writeError(w, http.StatusBadRequest, "기록 형식을 확인해주세요. 예: 3:29:59")
		return
	}

	member, ok := s.verifyMember(w, r, req.Name, req.BirthDate)
	if !ok {
		return
	}

	sub := webhook.RecordSubmission{
		MemberID:         member.MemberID,
		MemberName:       members.SanitizeText(req.Name, 20),
		RecordType:       req.RecordType,
		CompetitionID:    req.CompetitionID,
		CompetitionName:  members.SanitizeText(req.CompetitionName, 50),
		CompetitionClass: req.CompetitionClass,
		Record:           members.SanitizeText(req.Record, 20),
		CompetitionDate:  req.CompetitionDate,
	}
	if err := s.gateway.SubmitRecord(r.Context(), sub); err != nil {
		s.log.Error("submit record", "err", err)
		s.writeError(w, http.StatusBadGateway, "제출 중 오류가 발생했습니다. 다시 시도해주세요.")
		return
	}

	go s.notifier.RecordReceived(sub.MemberName, sub.CompetitionName, sub.Record)

	s.writeJSON(w, http.StatusAccepted, models.RaceRecord{
		RecordID:        "pending_" + uuid.NewString(),
		RecordType:      req.RecordType,
		FullName:        sub.MemberName,
		CompetitionID:   req.CompetitionID,
		CompetitionName: sub.CompetitionName,
		Class:           req.CompetitionClass,
		Record:          sub.Record,
		CompetitionDate: req.CompetitionDate,
	})
}

// handleMemberExport serves the roster as CSV behind an HMAC token so the
// link can be shared with admins without a login flow.
func (s *Server) handleMemberExport(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token required", http.StatusBadRequest)
		return
	}
	expected := util.HMACSHA256Hex(s.exportSecret, "export:members")
	if token != expected {
		http.Error(w, "invalid token", http.StatusForbidden)
		return
	}

	roster, err := s.export.Members(r.Context())
	if err != nil {
		s.log.Error("load roster", "err", err)
		http.Error(w, msgSheetUnavailable, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="members.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"member_id", "full_name", "gender", "status", "join_date", "phone"})
	for _, m := range roster {
		_ = cw.Write([]string{m.MemberID, m.FullName, m.Gender, m.Status, m.JoinDate, m.Phone})
	}
	cw.Flush()
}
