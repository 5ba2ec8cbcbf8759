package crew

// Agent is the persona an LLM call is made under.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
}

func (a Agent) system() string {
	return "You are " + a.Role + ".\n" + a.Backstory + "\nYour personal goal is: " + a.Goal
}

var (
	ActivityPlanner = Agent{
		Role: "Activity Planner",
		Goal: "Research and find cool things to do at the destination, including activities and events that match the traveler's interests and age group",
		Backstory: "You are skilled at creating personalized itineraries that cater to the specific preferences and demographics of travelers. " +
			"You only recommend places you found evidence for.",
	}
	RestaurantScout = Agent{
		Role: "Restaurant Scout",
		Goal: "Find highly-rated restaurants and dining experiences at the destination, and recommend scenic locations and fun activities",
		Backstory: "As a food lover, you know the best spots in town for a delightful culinary experience. " +
			"You also have a knack for finding picturesque and entertaining locations.",
	}
	ItineraryCompiler = Agent{
		Role: "Itinerary Compiler",
		Goal: "Compile all researched information into a comprehensive day-by-day itinerary, ensuring the integration of flights and hotel information",
		Backstory: "With an eye for detail, you organize all the information into a coherent and enjoyable travel plan.",
	}
)

// Task is one unit of agent work. Description and SearchHint may reference inputs as {key}.
type Task struct {
	Name           string
	Agent          Agent
	Description    string
	ExpectedOutput string
	// Research tasks search the web before answering; they run concurrently.
	Research   bool
	SearchHint string
	// JSON asks the model for a single JSON object.
	JSON bool
}

const itinerarySchema = `A single JSON object with this shape:
{"name": "short trip title",
 "hotel": "hotel name and address",
 "day_plans": [
   {"date": "day label such as June 30",
    "activities": [
      {"name": "", "location": "", "description": "", "date": "", "cousine": "",
       "why_its_suitable": "", "reviews": ["short quote"], "rating": "4.5"}],
    "restaurants": ["name - why"],
    "flight": "flight details for travel days, else empty"}]}
Return only the JSON object.`

// DefaultTasks is the surprise trip workflow: two research tasks feeding one compile task.
func DefaultTasks() []Task {
	return []Task{
		{
			Name:  "personalized_activity_planning",
			Agent: ActivityPlanner,
			Description: "Research and find cool things to do at {destination}.\n" +
				"Focus on activities and events that match the traveler's interests and age group.\n" +
				"Utilize internet search tools and recommendation engines to gather the information.\n\n" +
				"Traveler's information:\n" +
				"- origin: {origin}\n- destination: {destination}\n- age of the traveler: {age}\n" +
				"- hotel location: {hotel_location}\n- flight information: {flight_information}\n" +
				"- how long is the trip: {trip_duration}\n- goals and plans: {trip_goals_and_plans}",
			ExpectedOutput: "A list of recommended activities and events for each day of the trip. " +
				"Each entry should include the activity name, location, a brief description, and why it's suitable for the traveler. " +
				"Also include the date if the activity is an event, plus reviews and ratings.",
			Research:   true,
			SearchHint: "best things to do in {destination}",
		},
		{
			Name:  "restaurant_scenic_location_scout",
			Agent: RestaurantScout,
			Description: "Find highly-rated restaurants and dining experiences at {destination}.\n" +
				"Recommend scenic locations and fun activities that suit the traveler.\n" +
				"Utilize internet search tools, restaurant review sites, and travel guides.\n" +
				"Make sure to find a variety of options to suit different tastes and budgets, and ratings for them.\n\n" +
				"Traveler's information:\n" +
				"- origin: {origin}\n- destination: {destination}\n- age of the traveler: {age}\n" +
				"- hotel location: {hotel_location}\n- how long is the trip: {trip_duration}\n" +
				"- goals and plans: {trip_goals_and_plans}",
			ExpectedOutput: "A list of recommended restaurants, scenic locations, and fun activities for each day of the trip. " +
				"Each entry should include the name, location (address), type of cuisine or activity, and a brief description and ratings.",
			Research:   true,
			SearchHint: "best restaurants near {hotel_location} {destination}",
		},
		{
			Name:  "itinerary_compilation",
			Agent: ItineraryCompiler,
			Description: "Compile all researched information into a comprehensive day-by-day itinerary for the trip to {destination}.\n" +
				"Ensure the itinerary integrates flights and hotel information and covers {trip_duration}.\n\n" +
				"Trip: {request}\n" +
				"- age of the traveler: {age}\n- hotel location: {hotel_location}\n" +
				"- flight information: {flight_information}\n- goals and plans: {trip_goals_and_plans}",
			ExpectedOutput: itinerarySchema,
			JSON:           true,
		},
	}
}
