package dataset

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMovieTypeTopN(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.MovieType(10)
	if err != nil {
		t.Fatal(err)
	}
	// Drama 2、Documentary 2、Comedy 1；并列时按首次出现顺序（Drama 在前）
	want := []GenreCount{
		{MovieType: "Drama", Count: 2},
		{MovieType: "Documentary", Count: 2},
		{MovieType: "Comedy", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MovieType(10) = %v，期望 %v", got, want)
	}

	// 次数非递增
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("第 %d 行次数大于上一行", i)
		}
	}

	one, err := m.MovieType(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 || one[0].MovieType != "Drama" {
		t.Errorf("MovieType(1) = %v", one)
	}
}

func TestMovieTypeInvalidArgument(t *testing.T) {
	m := newFixtureManager(t)

	for _, n := range []int{0, -3} {
		if _, err := m.MovieType(n); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("MovieType(%d) 错误 = %v，期望 ErrInvalidArgument", n, err)
		}
	}
}

func TestMovieTypeMissingTable(t *testing.T) {
	m := NewManager(Options{ExtractedDir: t.TempDir()})
	m.LoadAll()

	if _, err := m.MovieType(5); !errors.Is(err, ErrMissingData) {
		t.Errorf("错误 = %v，期望 ErrMissingData", err)
	}
}

func TestActorCountHistogram(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.ActorCount()
	if err != nil {
		t.Fatal(err)
	}
	// 电影 1 有 Tom/Rita（Tom 重复记录去重），电影 2 有 Solo，电影 3 的演员名缺失
	want := []ActorBucket{
		{NumberOfActors: 0, MovieCount: 1},
		{NumberOfActors: 1, MovieCount: 1},
		{NumberOfActors: 2, MovieCount: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ActorCount() = %v，期望 %v", got, want)
	}

	// Movie_Count 总和等于有演员记录的电影数
	total := 0
	for _, b := range got {
		total += b.MovieCount
	}
	if total != 3 {
		t.Errorf("Movie_Count 总和 = %d，期望 3", total)
	}
}

func TestActorDistributionsHeightNormalization(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.ActorDistributions("All", 2.0, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("记录数 = %d，期望 4（坏身高行被丢弃）", len(got))
	}
	for _, rec := range got {
		if rec.ActorHeight < 1.5 || rec.ActorHeight > 2.0 {
			t.Errorf("身高 %v 超出闭区间 [1.5, 2.0]", rec.ActorHeight)
		}
		if rec.ActorHeight > 10 {
			t.Errorf("归一化后不应残留厘米值: %v", rec.ActorHeight)
		}
	}

	// 180（厘米）归一成 1.8；1.8 保持 1.8（>10 启发式下幂等）
	var tom, solo *ActorRecord
	for i := range got {
		switch got[i].ActorName {
		case "Tom":
			tom = &got[i]
		case "Solo":
			solo = &got[i]
		}
	}
	if tom == nil || tom.ActorHeight != 1.8 {
		t.Errorf("Tom 身高 = %+v，期望 1.8", tom)
	}
	if solo == nil || solo.ActorHeight != 1.8 {
		t.Errorf("Solo 身高 = %+v，期望 1.8", solo)
	}
}

func TestActorDistributionsGenderFilter(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.ActorDistributions("F", 2.0, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ActorName != "Rita" {
		t.Errorf("按 F 过滤结果 = %v", got)
	}
}

func TestActorDistributionsInvalidGender(t *testing.T) {
	m := newFixtureManager(t)

	_, err := m.ActorDistributions("X", 2.0, 1.5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("错误 = %v，期望 ErrInvalidArgument", err)
	}
	// 错误信息列出可选值
	for _, want := range []string{"M", "F", "All"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("错误信息缺少可选值 %s: %v", want, err)
		}
	}
}

func TestValidGenders(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.ValidGenders()
	if err != nil {
		t.Fatal(err)
	}
	// 按首次出现顺序；身高无法解析的行不参与
	if !reflect.DeepEqual(got, []string{"M", "F"}) {
		t.Errorf("ValidGenders() = %v", got)
	}
}

func TestReleasesPerYear(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.Releases("")
	if err != nil {
		t.Fatal(err)
	}
	want := []YearCount{
		{Year: 1995, MovieCount: 2},
		{Year: 2001, MovieCount: 1},
		{Year: 2003, MovieCount: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Releases(\"\") = %v，期望 %v", got, want)
	}
}

func TestReleasesGenreFilter(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.Releases("Documentary")
	if err != nil {
		t.Fatal(err)
	}
	// Delta 的上映日期无法解析，被丢弃；只剩 Gamma（2001）
	want := []YearCount{{Year: 2001, MovieCount: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Releases(Documentary) = %v，期望 %v", got, want)
	}

	// 精确匹配区分大小写
	empty, err := m.Releases("documentary")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("小写类型名不应命中: %v", empty)
	}
}

func TestAgesYearMode(t *testing.T) {
	m := newFixtureManager(t)

	want := []BirthBucket{
		{Index: 1940, BirthCount: 1},
		{Index: 1956, BirthCount: 3},
	}

	// 大小写不敏感，未知取值静默退回年份模式（沿用既有宽松行为）
	for _, mode := range []string{"Y", "y", "invalid", ""} {
		got, err := m.Ages(mode)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Ages(%q) = %v，期望 %v", mode, got, want)
		}
	}
}

func TestAgesMonthMode(t *testing.T) {
	m := newFixtureManager(t)

	got, err := m.Ages("m")
	if err != nil {
		t.Fatal(err)
	}
	// 只写年份的生日解析后落在 1 月
	want := []BirthBucket{
		{Index: 1, BirthCount: 1},
		{Index: 7, BirthCount: 2},
		{Index: 10, BirthCount: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ages(\"m\") = %v，期望 %v", got, want)
	}
}
