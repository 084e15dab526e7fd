package i18n

var dictionaries = map[string]map[string]string{
	"en": {
		"nav.home":        "Home",
		"nav.community":   "Community",
		"nav.money":       "Money Manager",
		"nav.admin":       "Admin",
		"nav.login":       "Login",
		"nav.register":    "Register",
		"nav.logout":      "Logout",
		"cv.summary":      "Summary",
		"cv.experience":   "Work Experience",
		"cv.education":    "Education",
		"cv.projects":     "Projects",
		"cv.languages":    "Languages",
		"cv.certificates": "Certificates",
		"cv.competences":  "IT Competences",
		"cv.interests":    "Interests",
		"auth.email":      "Email",
		"auth.password":   "Password",
		"auth.firstName":  "First name",
		"auth.lastName":   "Last name",
		"auth.login":      "Log in",
		"auth.register":   "Create account",
		"auth.registered": "Registration successful! You can now log in.",
		"community.title": "Community",
		"community.post":  "Post",
		"community.mine":  "My comments",
		"community.all":   "All comments",
		"community.empty": "No comments yet.",
		"common.search":   "Search",
		"common.save":     "Save",
		"common.edit":     "Edit",
		"common.delete":   "Delete",
		"common.cancel":   "Cancel",
		"common.back":     "Back",
		"admin.title":     "Users",
		"admin.ban":       "Ban",
		"admin.unban":     "Unban",
		"admin.banned":    "Banned",
		"admin.active":    "Active",
		"admin.empty":     "No users found.",
		"money.title":     "Money Manager",
		"money.empty":     "No months yet. Create your first month.",
		"money.newMonth":  "New month",
		"money.month":     "Month",
		"money.income":    "Total Income",
		"money.expenses":  "Total Expenses",
		"money.remaining": "Remaining Balance",
		"money.bills":     "Bills",
		"money.noBills":   "No bills yet.",
		"money.addBill":   "Add bill",
		"money.category":  "Category",
		"money.amount":    "Amount",
		"money.desc":      "Description",
		"money.color":     "Color",
		"money.breakdown": "Breakdown",
		"money.over":      "Over budget",
	},
	"sv": {
		"nav.home":        "Hem",
		"nav.community":   "Gemenskap",
		"nav.money":       "Ekonomi",
		"nav.admin":       "Admin",
		"nav.login":       "Logga in",
		"nav.register":    "Registrera",
		"nav.logout":      "Logga ut",
		"cv.summary":      "Sammanfattning",
		"cv.experience":   "Arbetslivserfarenhet",
		"cv.education":    "Utbildning",
		"cv.projects":     "Projekt",
		"cv.languages":    "Språk",
		"cv.certificates": "Certifikat",
		"cv.competences":  "IT-kompetenser",
		"cv.interests":    "Intressen",
		"auth.email":      "E-post",
		"auth.password":   "Lösenord",
		"auth.firstName":  "Förnamn",
		"auth.lastName":   "Efternamn",
		"auth.login":      "Logga in",
		"auth.register":   "Skapa konto",
		"auth.registered": "Registreringen lyckades! Du kan nu logga in.",
		"community.title": "Gemenskap",
		"community.post":  "Publicera",
		"community.mine":  "Mina kommentarer",
		"community.all":   "Alla kommentarer",
		"community.empty": "Inga kommentarer än.",
		"common.search":   "Sök",
		"common.save":     "Spara",
		"common.edit":     "Redigera",
		"common.delete":   "Ta bort",
		"common.cancel":   "Avbryt",
		"common.back":     "Tillbaka",
		"admin.title":     "Användare",
		"admin.ban":       "Spärra",
		"admin.unban":     "Häv spärr",
		"admin.banned":    "Spärrad",
		"admin.active":    "Aktiv",
		"admin.empty":     "Inga användare hittades.",
		"money.title":     "Ekonomi",
		"money.empty":     "Inga månader än. Skapa din första månad.",
		"money.newMonth":  "Ny månad",
		"money.month":     "Månad",
		"money.income":    "Total inkomst",
		"money.expenses":  "Totala utgifter",
		"money.remaining": "Kvar att använda",
		"money.bills":     "Räkningar",
		"money.noBills":   "Inga räkningar än.",
		"money.addBill":   "Lägg till räkning",
		"money.category":  "Kategori",
		"money.amount":    "Belopp",
		"money.desc":      "Beskrivning",
		"money.color":     "Färg",
		"money.breakdown": "Fördelning",
		"money.over":      "Över budget",
	},
	"ar": {
		"nav.home":        "الرئيسية",
		"nav.community":   "المجتمع",
		"nav.money":       "إدارة الأموال",
		"nav.admin":       "المشرف",
		"nav.login":       "تسجيل الدخول",
		"nav.register":    "إنشاء حساب",
		"nav.logout":      "تسجيل الخروج",
		"cv.summary":      "نبذة",
		"cv.experience":   "الخبرة العملية",
		"cv.education":    "التعليم",
		"cv.projects":     "المشاريع",
		"cv.languages":    "اللغات",
		"cv.certificates": "الشهادات",
		"cv.competences":  "المهارات التقنية",
		"cv.interests":    "الاهتمامات",
		"auth.email":      "البريد الإلكتروني",
		"auth.password":   "كلمة المرور",
		"auth.firstName":  "الاسم الأول",
		"auth.lastName":   "اسم العائلة",
		"auth.login":      "دخول",
		"auth.register":   "إنشاء حساب",
		"auth.registered": "تم التسجيل بنجاح! يمكنك الآن تسجيل الدخول.",
		"community.title": "المجتمع",
		"community.post":  "نشر",
		"community.mine":  "تعليقاتي",
		"community.all":   "كل التعليقات",
		"community.empty": "لا توجد تعليقات بعد.",
		"common.search":   "بحث",
		"common.save":     "حفظ",
		"common.edit":     "تعديل",
		"common.delete":   "حذف",
		"common.cancel":   "إلغاء",
		"common.back":     "رجوع",
		"admin.title":     "المستخدمون",
		"admin.ban":       "حظر",
		"admin.unban":     "إلغاء الحظر",
		"admin.banned":    "محظور",
		"admin.active":    "نشط",
		"admin.empty":     "لم يتم العثور على مستخدمين.",
		"money.title":     "إدارة الأموال",
		"money.empty":     "لا توجد أشهر بعد. أنشئ شهرك الأول.",
		"money.newMonth":  "شهر جديد",
		"money.month":     "الشهر",
		"money.income":    "إجمالي الدخل",
		"money.expenses":  "إجمالي المصروفات",
		"money.remaining": "الرصيد المتبقي",
		"money.bills":     "الفواتير",
		"money.noBills":   "لا توجد فواتير بعد.",
		"money.addBill":   "إضافة فاتورة",
		"money.category":  "الفئة",
		"money.amount":    "المبلغ",
		"money.desc":      "الوصف",
		"money.color":     "اللون",
		"money.breakdown": "التوزيع",
		"money.over":      "تجاوز الميزانية",
	},
}
