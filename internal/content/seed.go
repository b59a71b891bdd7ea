// ABOUTME: Seed defaults returned by the content store before anything is persisted
// ABOUTME: Every constructor returns a fresh copy so callers may mutate the result

package content

// DefaultAdminPassword is the credential in effect until an admin changes it.
const DefaultAdminPassword = "1234"

// SeedMenu returns sample menu items covering every category.
func SeedMenu() []MenuItem {
	return []MenuItem{
		{
			ID:          "m1",
			Name:        "시그니처 라떼",
			NameEng:     "Signature Latte",
			Description: "고소한 원두와 우유 거품이 어우러진 대표 메뉴",
			Price:       5500,
			Category:    CategoryCoffee,
			ImageURL:    "https://images.unsplash.com/photo-1561882468-9110e03e0f78?w=800",
			IsSignature: true,
		},
		{
			ID:          "m2",
			Name:        "아메리카노",
			NameEng:     "Americano",
			Description: "매일 아침 로스팅한 싱글 오리진 원두",
			Price:       4500,
			Category:    CategoryCoffee,
			ImageURL:    "https://images.unsplash.com/photo-1551030173-122aabc4489c?w=800",
		},
		{
			ID:          "m3",
			Name:        "자몽 에이드",
			NameEng:     "Grapefruit Ade",
			Description: "생자몽을 직접 착즙한 상큼한 에이드",
			Price:       6000,
			Category:    CategoryBeverage,
			ImageURL:    "https://images.unsplash.com/photo-1621263764928-df1444c5e859?w=800",
		},
		{
			ID:          "m4",
			Name:        "버터 크루아상",
			NameEng:     "Butter Croissant",
			Description: "프랑스산 버터로 매일 굽는 크루아상",
			Price:       4000,
			Category:    CategoryBakery,
			ImageURL:    "https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=800",
			IsSignature: true,
		},
		{
			ID:          "m5",
			Name:        "에그 베네딕트",
			NameEng:     "Eggs Benedict",
			Description: "수란과 홀랜다이즈 소스를 올린 브런치 플레이트",
			Price:       14000,
			Category:    CategoryBrunch,
			ImageURL:    "https://images.unsplash.com/photo-1608039829572-78524f79c4c7?w=800",
			IsSignature: true,
		},
	}
}

// SeedGallery returns sample gallery images.
func SeedGallery() []GalleryItem {
	return []GalleryItem{
		{ID: "g1", Title: "창가 자리", ImageURL: "https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=1200", Category: GalleryInterior},
		{ID: "g2", Title: "로스팅 룸", ImageURL: "https://images.unsplash.com/photo-1442512595331-e89e73853f31?w=1200", Category: GalleryInterior},
		{ID: "g3", Title: "오늘의 디저트", ImageURL: "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=1200", Category: GalleryMenu},
	}
}

// SeedPosts returns sample news posts, one of them pinned.
func SeedPosts() []Post {
	return []Post{
		{
			ID:       "p1",
			Title:    "영업시간 안내",
			Date:     "2024-03-01",
			Content:  "평일 08:00 - 21:00, 주말 10:00 - 22:00 영업합니다.",
			Category: PostNotice,
			IsPinned: true,
		},
		{
			ID:       "p2",
			Title:    "봄 시즌 메뉴 출시",
			Date:     "2024-03-15",
			Content:  "벚꽃 라떼와 딸기 타르트가 새로 출시되었습니다.",
			Category: PostEvent,
			ImageURL: "https://images.unsplash.com/photo-1464305795204-6f5bbfc7fb81?w=800",
		},
	}
}

// SeedPhilosophy returns the default three philosophy items.
func SeedPhilosophy() []PhilosophyItem {
	return []PhilosophyItem{
		{Title: "Quality", Description: "좋은 재료만을 고집합니다."},
		{Title: "Craft", Description: "매일 직접 로스팅하고 굽습니다."},
		{Title: "Warmth", Description: "머무는 모든 순간이 편안하도록."},
	}
}

// SeedAboutPage returns a fully populated about-page document.
func SeedAboutPage() AboutPage {
	return AboutPage{
		Hero: AboutHero{
			Title:    "Our Story",
			Subtitle: "작은 골목의 따뜻한 커피 한 잔",
			ImageURL: "https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=1600",
		},
		Story: AboutStory{
			Title:        "커피와 빵, 그리고 사람",
			Description1: "2015년 작은 로스터리로 시작했습니다.",
			Description2: "지금도 매일 아침 직접 원두를 볶고 빵을 굽습니다.",
			ImageMain:    "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=1200",
			ImageSub:     "https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=800",
		},
		Philosophy: AboutPhilosophy{
			Title:    "Philosophy",
			Subtitle: "우리가 지키는 세 가지",
			Items:    SeedPhilosophy(),
		},
		Gallery: AboutGallery{
			Title:       "Moments",
			Description: "카페의 하루를 담았습니다.",
			Images: []AboutImage{
				{ID: "a1", URL: "https://images.unsplash.com/photo-1445116572660-236099ec97a0?w=1200", Caption: "아침 햇살"},
				{ID: "a2", URL: "https://images.unsplash.com/photo-1453614512568-c4024d13c247?w=1200", Caption: "바리스타"},
				{ID: "a3", URL: "https://images.unsplash.com/photo-1521017432531-fbd92d768814?w=1200", Caption: "오후의 테이블"},
			},
		},
		Location: AboutLocation{
			Address:    "서울특별시 마포구 연남로 12",
			SubAddress: "1층 (연남동)",
			MapImage:   "https://images.unsplash.com/photo-1524661135-423995f22d0b?w=1200",
		},
	}
}

// SeedSiteConfig returns the default site-wide settings.
func SeedSiteConfig() SiteConfig {
	return SiteConfig{
		HeroTitle:                 "Slow Coffee, Warm Bread",
		HeroSubtitle:              "매일 굽고 매일 볶는 동네 카페",
		PhilosophyBackgroundImage: "https://images.unsplash.com/photo-1447933601403-0c6688de566e?w=1600",
	}
}
