package classify

// Hand-authored fallback catalogs, used when heuristic extraction over the
// brief and the generated drafts yields nothing usable.

var featureCatalogs = map[Category][]string{
	AIChatbot: {
		"Natural language processing and understanding capabilities",
		"Conversational user interface with context awareness",
		"Integration with knowledge base and FAQ system",
		"Multi-channel support (web, mobile, API)",
	},
	Ecommerce: {
		"Product catalog with search and filtering",
		"Shopping cart and checkout system",
		"Secure payment gateway integration",
		"Order management and tracking system",
	},
	IOS: {
		"Native iOS application with Swift/SwiftUI",
		"iOS Human Interface Guidelines compliance",
		"App Store integration and submission",
		"Core Data or CloudKit for data persistence",
		"Push notifications via APNs",
	},
	Android: {
		"Native Android application with Kotlin/Java",
		"Material Design guidelines compliance",
		"Google Play Store integration",
		"Room or SQLite for local database",
		"Firebase Cloud Messaging for push notifications",
	},
	CrossPlatform: {
		"Cross-platform mobile application (iOS/Android)",
		"Offline functionality and data synchronization",
		"Push notifications for updates and reminders",
		"User authentication and profile management",
	},
	Web: {
		"Responsive web interface for desktop and mobile browsers",
		"User account management and onboarding flow",
		"Search and navigation across core content",
		"Admin dashboard for content and user management",
	},
	Generic: {
		"User-friendly and intuitive interface",
		"Core functionality as per requirements",
		"Data management and storage system",
		"Security and authentication mechanisms",
	},
}

var toolCatalogs = map[Category][]string{
	IOS: {
		"Xcode - Apple's integrated development environment (IDE)",
		"Swift programming language for iOS development",
		"SwiftUI or UIKit for user interface development",
		"Core Data or CloudKit for data persistence",
		"CocoaPods or Swift Package Manager for dependency management",
		"TestFlight for beta testing",
		"App Store Connect for app distribution",
	},
	Android: {
		"Android Studio - Official Android IDE",
		"Kotlin or Java programming language",
		"Jetpack Compose or XML layouts for UI",
		"Room or SQLite for local database",
		"Gradle for build automation and dependency management",
		"Google Play Console for app distribution",
		"Firebase for backend services (optional)",
	},
	CrossPlatform: {
		"React Native or Flutter for cross-platform development",
		"Firebase or AWS for backend services",
		"SQLite or Realm for local database",
		"RESTful API for server communication",
	},
	Web: {
		"React.js or Vue.js for frontend framework",
		"Node.js or Python Django/Flask for backend",
		"PostgreSQL or MongoDB for database",
		"Docker for containerization and deployment",
	},
	Ecommerce: {
		"React.js or Vue.js storefront with server-side rendering",
		"Node.js or Python backend with payment gateway SDKs",
		"PostgreSQL for orders and inventory data",
		"Redis for session and cart caching",
	},
	AIChatbot: {
		"Python with TensorFlow or PyTorch for ML models",
		"NLTK or spaCy for NLP processing",
		"FastAPI or Flask for API development",
		"Vector database (Pinecone/Weaviate) for embeddings",
	},
	Generic: {
		"Modern web framework (React/Vue/Angular)",
		"Backend API framework (Node.js/Python/Java)",
		"Database system (PostgreSQL/MySQL/MongoDB)",
		"Cloud hosting platform (AWS/Azure/GCP)",
	},
}

// FallbackFeatures returns the fixed feature catalog for a category.
func FallbackFeatures(cat Category) []string {
	if features, ok := featureCatalogs[cat]; ok {
		return append([]string(nil), features...)
	}
	return append([]string(nil), featureCatalogs[Generic]...)
}

// FallbackTools returns the fixed tool catalog for a category. Native-platform
// catalogs are never shadowed by the generic web or mobile ones because Detect
// checks iOS/Android first.
func FallbackTools(cat Category) []string {
	if tools, ok := toolCatalogs[cat]; ok {
		return append([]string(nil), tools...)
	}
	return append([]string(nil), toolCatalogs[Generic]...)
}
